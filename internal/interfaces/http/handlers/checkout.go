// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		config:          cfg,
	}
}

// ValidateForm handles POST /checkout/validate. The storefront calls
// this as the shopper fills in the form, so a failed validation is
// still a 200 with the per-field messages.
func (h *CheckoutHandler) ValidateForm(c *gin.Context) {
	var form checkout.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	validation := checkout.ValidateForm(&form)

	c.JSON(http.StatusOK, gin.H{
		"message": "Form validated",
		"data":    validation,
	})
}

// CreateSession handles POST /checkout/session
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config.Store.CartTTL)

	var form checkout.CheckoutForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	response, validation, err := h.checkoutService.CreateSession(c.Request.Context(), sessionID, &form)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrInvalidForm):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Checkout form validation failed",
				"data":  validation,
			})
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
		case errors.Is(err, checkout.ErrPaymentNotConfigured):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Payment provider is not configured",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to create checkout session",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout session created successfully",
		"data":    response,
	})
}
