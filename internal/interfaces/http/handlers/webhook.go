// internal/interfaces/http/handlers/webhook.go
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/payment"
)

// WebhookHandler handles payment provider webhook deliveries
type WebhookHandler struct {
	stripeService *payment.StripeService
	logger        *logrus.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(stripeService *payment.StripeService, logger *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{
		stripeService: stripeService,
		logger:        logger,
	}
}

// HandleStripeWebhook handles POST /webhooks/stripe. A bad signature
// is rejected with 400; once the event is verified the delivery is
// always acknowledged with 200 so Stripe stops retrying. Storage
// failures are logged and picked up from the provider dashboard.
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read request body",
		})
		return
	}

	event, err := h.stripeService.VerifyEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		h.logger.WithError(err).Warn("Webhook signature verification failed")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid webhook signature",
		})
		return
	}

	if _, err := h.stripeService.HandleEvent(c.Request.Context(), event); err != nil {
		h.logger.WithFields(logrus.Fields{
			"event_id":   event.ID,
			"event_type": event.Type,
		}).WithError(err).Error("Failed to process webhook event")
	}

	c.JSON(http.StatusOK, gin.H{
		"received": true,
	})
}
