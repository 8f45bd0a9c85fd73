// internal/domain/payment/stripe_service.go
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/webhook"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

const shippingLinePrefix = "Standard shipping"

// StripeService turns verified Stripe webhook events into recorded
// orders. Only checkout.session.completed is acted on; every other
// event type is acknowledged and dropped.
type StripeService struct {
	config       *config.Config
	logger       *logrus.Logger
	orderService *order.Service
}

// NewStripeService creates a new Stripe webhook service
func NewStripeService(cfg *config.Config, logger *logrus.Logger, orderService *order.Service) *StripeService {
	return &StripeService{
		config:       cfg,
		logger:       logger,
		orderService: orderService,
	}
}

// VerifyEvent checks the webhook signature against the configured
// endpoint secret and parses the event. Nothing is processed before
// this succeeds.
func (s *StripeService) VerifyEvent(payload []byte, signatureHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, signatureHeader, s.config.Stripe.WebhookSecret)
}

// HandleEvent processes a verified event. Returns whether an order was
// recorded by this delivery.
func (s *StripeService) HandleEvent(ctx context.Context, event stripe.Event) (bool, error) {
	if event.Type != "checkout.session.completed" {
		s.logger.WithField("event_type", event.Type).Debug("Ignoring webhook event")
		return false, nil
	}

	var checkoutSession stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &checkoutSession); err != nil {
		return false, fmt.Errorf("failed to parse checkout session: %w", err)
	}

	lineItems, err := s.fetchLineItems(checkoutSession.ID)
	if err != nil {
		return false, fmt.Errorf("failed to list line items: %w", err)
	}

	return s.RecordCompletedSession(ctx, &checkoutSession, lineItems)
}

// RecordCompletedSession converts a completed checkout session plus
// its line items into an order record. Idempotent on the session id.
func (s *StripeService) RecordCompletedSession(ctx context.Context, cs *stripe.CheckoutSession, lineItems []*stripe.LineItem) (bool, error) {
	rec := &order.CheckoutRecord{
		SessionID:     cs.ID,
		CheckoutRef:   cs.Metadata["checkout_ref"],
		TotalCents:    cs.AmountTotal,
		Currency:      strings.ToUpper(string(cs.Currency)),
		PaymentStatus: string(cs.PaymentStatus),
	}

	if cs.PaymentIntent != nil {
		rec.PaymentIntent = cs.PaymentIntent.ID
	}
	if cs.CustomerDetails != nil {
		rec.CustomerName = cs.CustomerDetails.Name
		rec.CustomerEmail = cs.CustomerDetails.Email
		rec.CustomerPhone = cs.CustomerDetails.Phone
	}
	if rec.CustomerName == "" {
		rec.CustomerName = cs.Metadata["customer_name"]
	}
	if rec.CustomerPhone == "" {
		rec.CustomerPhone = cs.Metadata["customer_phone"]
	}
	if cs.ShippingDetails != nil && cs.ShippingDetails.Address != nil {
		addr := cs.ShippingDetails.Address
		rec.Address = order.Address{
			Line1:      addr.Line1,
			Line2:      addr.Line2,
			City:       addr.City,
			State:      addr.State,
			PostalCode: addr.PostalCode,
			Country:    addr.Country,
		}
	}

	var shippingCents int64
	for _, item := range lineItems {
		if strings.HasPrefix(item.Description, shippingLinePrefix) {
			shippingCents += item.AmountTotal
			continue
		}
		rec.Items = append(rec.Items, order.RecordItem{
			Name:       item.Description,
			Quantity:   int(item.Quantity),
			TotalCents: item.AmountTotal,
		})
	}
	rec.ShippingCents = shippingCents
	rec.SubtotalCents = cs.AmountTotal - shippingCents

	ord, created, err := s.orderService.RecordCheckout(ctx, rec)
	if err != nil {
		return false, err
	}

	entry := s.logger.WithFields(logrus.Fields{
		"stripe_session": cs.ID,
		"order_id":       ord.ID,
		"order_number":   ord.OrderNumber,
	})
	if created {
		entry.Info("Order recorded from checkout session")
	} else {
		entry.Info("Checkout session already recorded, skipping")
	}
	return created, nil
}

func (s *StripeService) fetchLineItems(sessionID string) ([]*stripe.LineItem, error) {
	stripe.Key = s.config.Stripe.SecretKey

	params := &stripe.CheckoutSessionListLineItemsParams{
		Session: stripe.String(sessionID),
	}
	iter := session.ListLineItems(params)

	var items []*stripe.LineItem
	for iter.Next() {
		items = append(items, iter.LineItem())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
