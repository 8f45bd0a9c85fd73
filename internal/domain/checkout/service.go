// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
)

var (
	ErrEmptyCart            = errors.New("cart is empty")
	ErrPaymentNotConfigured = errors.New("payment provider is not configured")
	ErrInvalidForm          = errors.New("checkout form validation failed")
)

var shippingAllowedCountries = []string{"US", "CA", "GB", "AU", "IN"}

// Service handles checkout business logic: form validation and
// payment session creation. The order itself is only recorded when the
// payment provider confirms the session via webhook.
type Service struct {
	cartService *cart.Service
	config      *config.Config
	logger      *logrus.Logger
}

// NewService creates a new checkout service
func NewService(cartService *cart.Service, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		cartService: cartService,
		config:      cfg,
		logger:      logger,
	}
}

// SessionResponse is the handle the shopper is redirected with
type SessionResponse struct {
	SessionID   string `json:"session_id"`
	URL         string `json:"url"`
	CheckoutRef string `json:"checkout_ref"`
}

// CreateSession validates the form, snapshots the cart and opens a
// Stripe Checkout Session. Nothing is persisted here and the cart is
// left untouched, so a failed attempt can simply be retried.
func (s *Service) CreateSession(ctx context.Context, sessionID string, form *CheckoutForm) (*SessionResponse, *CheckoutValidation, error) {
	validation := ValidateForm(form)
	if !validation.IsValid {
		return nil, validation, ErrInvalidForm
	}

	if s.config.Stripe.SecretKey == "" {
		return nil, nil, ErrPaymentNotConfigured
	}

	cartResponse, err := s.cartService.GetCart(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(cartResponse.Items) == 0 {
		return nil, nil, ErrEmptyCart
	}

	currency := s.config.Store.Currency
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(cartResponse.Items)+1)
	for _, line := range cartResponse.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(line.Price),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(line.Name),
				},
			},
			Quantity: stripe.Int64(int64(line.Quantity)),
		})
	}

	// Shipping rides along as its own line item below the free threshold
	if cartResponse.Totals.ShippingCost > 0 {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(cartResponse.Totals.ShippingCost),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(s.shippingLineName()),
				},
			},
			Quantity: stripe.Int64(1),
		})
	}

	checkoutRef := uuid.New().String()

	stripe.Key = s.config.Stripe.SecretKey
	params := &stripe.CheckoutSessionParams{
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:                lineItems,
		SuccessURL:               stripe.String(s.config.Stripe.SuccessURL),
		CancelURL:                stripe.String(s.config.Stripe.CancelURL),
		CustomerEmail:            stripe.String(form.Email),
		BillingAddressCollection: stripe.String("required"),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(shippingAllowedCountries),
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{
				"checkout_ref": checkoutRef,
			},
		},
	}
	params.AddMetadata("order_source", "storefront")
	params.AddMetadata("checkout_ref", checkoutRef)
	params.AddMetadata("customer_phone", form.Phone)
	params.AddMetadata("customer_name", fmt.Sprintf("%s %s", form.FirstName, form.LastName))

	checkoutSession, err := session.New(params)
	if err != nil {
		s.logger.WithError(err).Error("Failed to create checkout session")
		return nil, nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"checkout_ref":   checkoutRef,
		"stripe_session": checkoutSession.ID,
		"amount_total":   cartResponse.Totals.TotalAmount,
	}).Info("Checkout session created")

	return &SessionResponse{
		SessionID:   checkoutSession.ID,
		URL:         checkoutSession.URL,
		CheckoutRef: checkoutRef,
	}, validation, nil
}

func (s *Service) shippingLineName() string {
	threshold := float64(s.config.Store.FreeShippingThresholdCent) / 100
	return fmt.Sprintf("Standard shipping (Free on orders over $%.0f)", threshold)
}
