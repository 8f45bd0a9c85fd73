// internal/interfaces/http/handlers/preferences.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/preferences"
)

// PreferencesHandler handles per-session display preferences
type PreferencesHandler struct {
	preferencesService *preferences.Service
	config             *config.Config
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(preferencesService *preferences.Service, cfg *config.Config) *PreferencesHandler {
	return &PreferencesHandler{
		preferencesService: preferencesService,
		config:             cfg,
	}
}

// SetThemeRequest represents a theme change request
type SetThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// GetTheme handles GET /preferences/theme
func (h *PreferencesHandler) GetTheme(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config.Store.CartTTL)

	theme, err := h.preferencesService.GetTheme(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve theme",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Theme retrieved successfully",
		"data": gin.H{
			"theme": theme,
		},
	})
}

// SetTheme handles PUT /preferences/theme
func (h *PreferencesHandler) SetTheme(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config.Store.CartTTL)

	var req SetThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.preferencesService.SetTheme(c.Request.Context(), sessionID, req.Theme); err != nil {
		if errors.Is(err, preferences.ErrInvalidTheme) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Theme must be light or dark",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store theme",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Theme updated successfully",
		"data": gin.H{
			"theme": req.Theme,
		},
	})
}
