// internal/domain/payment/stripe_service_test.go
package payment

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v80"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
	redisdb "github.com/your-org/storefront-backend/internal/infrastructure/database/redis"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*StripeService, context.Context) {
	t.Helper()

	redisClient := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&order.Order{}, &order.OrderItem{}, &order.OrderStatusHistory{}))

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{}
	orderService := order.NewService(db, &redisdb.Client{Redis: redisClient}, cfg, log)

	t.Cleanup(func() { redisClient.Close() })
	return NewStripeService(cfg, log, orderService), ctx
}

func completedSession() *stripe.CheckoutSession {
	return &stripe.CheckoutSession{
		ID:            "cs_test_hook",
		AmountTotal:   5099,
		Currency:      stripe.CurrencyUSD,
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		PaymentIntent: &stripe.PaymentIntent{ID: "pi_hook"},
		Metadata: map[string]string{
			"order_source":   "storefront",
			"checkout_ref":   "ref-hook",
			"customer_name":  "Fallback Name",
			"customer_phone": "9999999999",
		},
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{
			Name:  "Asha Rao",
			Email: "asha@example.com",
			Phone: "9876543210",
		},
		ShippingDetails: &stripe.ShippingDetails{
			Address: &stripe.Address{
				Line1:      "12 Temple Street",
				City:       "Vijayawada",
				State:      "AP",
				PostalCode: "521001",
				Country:    "IN",
			},
		},
	}
}

func completedLineItems() []*stripe.LineItem {
	return []*stripe.LineItem{
		{Description: "Mini Doll", Quantity: 2, AmountTotal: 2000},
		{Description: "Peacock Pair", Quantity: 1, AmountTotal: 2500},
		{Description: "Standard shipping (Free on orders over $50)", Quantity: 1, AmountTotal: 599},
	}
}

func TestHandleEventIgnoresOtherEventTypes(t *testing.T) {
	svc, ctx := newTestService(t)

	created, err := svc.HandleEvent(ctx, stripe.Event{Type: "payment_intent.succeeded"})
	require.NoError(t, err)
	assert.False(t, created)
}

func TestRecordCompletedSessionMapsFields(t *testing.T) {
	svc, ctx := newTestService(t)

	created, err := svc.RecordCompletedSession(ctx, completedSession(), completedLineItems())
	require.NoError(t, err)
	require.True(t, created)

	ord, err := svc.orderService.GetBySessionID(ctx, "cs_test_hook")
	require.NoError(t, err)

	assert.Equal(t, "pi_hook", ord.StripePaymentIntent)
	assert.Equal(t, "ref-hook", ord.CheckoutRef)
	assert.Equal(t, "USD", ord.Currency)
	assert.Equal(t, "paid", ord.PaymentStatus)

	// Customer details from the session win over metadata
	assert.Equal(t, "Asha Rao", ord.CustomerName)
	assert.Equal(t, "asha@example.com", ord.CustomerEmail)
	assert.Equal(t, "9876543210", ord.CustomerPhone)

	assert.Equal(t, "12 Temple Street", ord.ShippingAddress.Line1)
	assert.Equal(t, "IN", ord.ShippingAddress.Country)

	// Shipping line is split out of the item list
	require.Len(t, ord.Items, 2)
	assert.True(t, ord.ShippingAmount.Equal(decimal.NewFromFloat(5.99)), "shipping %s", ord.ShippingAmount)
	assert.True(t, ord.Subtotal.Equal(decimal.NewFromFloat(45.00)), "subtotal %s", ord.Subtotal)
	assert.True(t, ord.AmountTotal.Equal(decimal.NewFromFloat(50.99)), "total %s", ord.AmountTotal)
}

func TestRecordCompletedSessionFallsBackToMetadata(t *testing.T) {
	svc, ctx := newTestService(t)

	cs := completedSession()
	cs.ID = "cs_test_meta"
	cs.CustomerDetails = &stripe.CheckoutSessionCustomerDetails{
		Email: "asha@example.com",
	}

	created, err := svc.RecordCompletedSession(ctx, cs, completedLineItems())
	require.NoError(t, err)
	require.True(t, created)

	ord, err := svc.orderService.GetBySessionID(ctx, "cs_test_meta")
	require.NoError(t, err)

	assert.Equal(t, "Fallback Name", ord.CustomerName)
	assert.Equal(t, "9999999999", ord.CustomerPhone)
}

func TestRecordCompletedSessionReplay(t *testing.T) {
	svc, ctx := newTestService(t)

	created, err := svc.RecordCompletedSession(ctx, completedSession(), completedLineItems())
	require.NoError(t, err)
	require.True(t, created)

	created, err = svc.RecordCompletedSession(ctx, completedSession(), completedLineItems())
	require.NoError(t, err)
	assert.False(t, created)
}

func TestRecordCompletedSessionNoShippingLine(t *testing.T) {
	svc, ctx := newTestService(t)

	cs := completedSession()
	cs.ID = "cs_test_free"
	cs.AmountTotal = 6000

	items := []*stripe.LineItem{
		{Description: "Temple Set", Quantity: 1, AmountTotal: 6000},
	}

	created, err := svc.RecordCompletedSession(ctx, cs, items)
	require.NoError(t, err)
	require.True(t, created)

	ord, err := svc.orderService.GetBySessionID(ctx, "cs_test_free")
	require.NoError(t, err)

	assert.True(t, ord.ShippingAmount.IsZero())
	assert.True(t, ord.Subtotal.Equal(decimal.NewFromFloat(60.00)))
	require.Len(t, ord.Items, 1)
}
