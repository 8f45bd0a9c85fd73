// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	redisdb "github.com/your-org/storefront-backend/internal/infrastructure/database/redis"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	recentOrdersKey   = "orders:recent"
	recentOrdersTTL   = 60 * time.Second
	recentOrdersLimit = 100
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotCancellable    = errors.New("order cannot be cancelled in current status")
)

// Service handles order business logic
type Service struct {
	db     *gorm.DB
	cache  *redisdb.Client
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new order service
func NewService(db *gorm.DB, cache *redisdb.Client, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		db:     db,
		cache:  cache,
		config: cfg,
		logger: logger,
	}
}

// CheckoutRecord carries the details of a completed checkout session.
// All amounts are in minor units as delivered by the payment provider.
type CheckoutRecord struct {
	SessionID     string
	PaymentIntent string
	CheckoutRef   string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Address       Address
	SubtotalCents int64
	ShippingCents int64
	TotalCents    int64
	Currency      string
	PaymentStatus string
	Items         []RecordItem
}

// RecordItem is one purchased line
type RecordItem struct {
	Name       string
	Quantity   int
	TotalCents int64 // Line total in minor units
}

// RecordCheckout persists an order for a completed checkout session.
// The call is idempotent on the session id: a replayed or concurrent
// delivery finds the unique index and changes nothing. Returns the
// stored order and whether this call created it.
func (s *Service) RecordCheckout(ctx context.Context, rec *CheckoutRecord) (*Order, bool, error) {
	if rec.SessionID == "" {
		return nil, false, fmt.Errorf("checkout record missing session id")
	}

	ord := Order{
		StripeSessionID:     rec.SessionID,
		StripePaymentIntent: rec.PaymentIntent,
		CheckoutRef:         rec.CheckoutRef,
		CustomerName:        rec.CustomerName,
		CustomerEmail:       rec.CustomerEmail,
		CustomerPhone:       rec.CustomerPhone,
		ShippingAddress:     rec.Address,
		Subtotal:            minorToMajor(rec.SubtotalCents),
		ShippingAmount:      minorToMajor(rec.ShippingCents),
		AmountTotal:         minorToMajor(rec.TotalCents),
		Currency:            rec.Currency,
		PaymentStatus:       rec.PaymentStatus,
		Status:              OrderStatusConfirmed,
	}
	for _, item := range rec.Items {
		ord.Items = append(ord.Items, OrderItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    minorToMajor(item.TotalCents),
		})
	}
	ord.StatusHistory = []OrderStatusHistory{{
		Status:    OrderStatusConfirmed,
		Message:   "Order confirmed",
		CreatedAt: time.Now().UTC(),
	}}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stripe_session_id"}},
			DoNothing: true,
		}).
		Create(&ord)
	if result.Error != nil {
		return nil, false, fmt.Errorf("failed to record order: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// Session already recorded, return the existing order
		existing, err := s.GetBySessionID(ctx, rec.SessionID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	ord.OrderNumber = ord.GenerateOrderNumber()
	if err := s.db.WithContext(ctx).Model(&ord).Update("order_number", ord.OrderNumber).Error; err != nil {
		return nil, false, fmt.Errorf("failed to set order number: %w", err)
	}

	s.invalidateRecentCache(ctx)
	return &ord, true, nil
}

// ListRecent returns the newest orders, newest first, capped at the
// recent-order limit. Results are cached briefly in Redis.
func (s *Service) ListRecent(ctx context.Context) ([]Order, error) {
	var cached []Order
	if err := s.cache.GetJSON(ctx, recentOrdersKey, &cached); err == nil {
		return cached, nil
	}

	var orders []Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Order("created_at DESC").
		Limit(recentOrdersLimit).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	if err := s.cache.SetJSON(ctx, recentOrdersKey, orders, recentOrdersTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to cache recent orders")
	}
	return orders, nil
}

// GetOrder retrieves a single order by ID
func (s *Service) GetOrder(ctx context.Context, id uint) (*Order, error) {
	var ord Order
	result := s.db.WithContext(ctx).
		Preload("Items").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Where("id = ?", id).
		First(&ord)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &ord, nil
}

// GetBySessionID retrieves a single order by its checkout session id
func (s *Service) GetBySessionID(ctx context.Context, sessionID string) (*Order, error) {
	var ord Order
	result := s.db.WithContext(ctx).
		Preload("Items").
		Preload("StatusHistory").
		Where("stripe_session_id = ?", sessionID).
		First(&ord)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}
	return &ord, nil
}

// UpdateOrderStatus advances an order along the fulfillment chain
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID uint, status OrderStatus, message string) error {
	var ord Order
	if err := s.db.WithContext(ctx).First(&ord, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to retrieve order: %w", err)
	}

	if !isValidStatusTransition(ord.Status, status) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, ord.Status, status)
	}

	if err := s.db.WithContext(ctx).Model(&ord).Update("status", status).Error; err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if message == "" {
		message = GetStatusLabel(status)
	}
	history := OrderStatusHistory{
		OrderID:   orderID,
		Status:    status,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&history).Error; err != nil {
		return fmt.Errorf("failed to create status history: %w", err)
	}

	s.invalidateRecentCache(ctx)
	return nil
}

// CancelOrder cancels an order that has not been delivered yet
func (s *Service) CancelOrder(ctx context.Context, orderID uint, reason string) error {
	var ord Order
	if err := s.db.WithContext(ctx).First(&ord, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to retrieve order: %w", err)
	}

	if !ord.CanBeCancelled() {
		return fmt.Errorf("%w: %s", ErrNotCancellable, ord.Status)
	}

	message := "Order cancelled"
	if reason != "" {
		message = fmt.Sprintf("Order cancelled: %s", reason)
	}
	return s.UpdateOrderStatus(ctx, orderID, OrderStatusCancelled, message)
}

// Private helper methods

func minorToMajor(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}

func (s *Service) invalidateRecentCache(ctx context.Context) {
	if err := s.cache.Del(ctx, recentOrdersKey); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate recent order cache")
	}
}

func isValidStatusTransition(from, to OrderStatus) bool {
	validTransitions := map[OrderStatus][]OrderStatus{
		OrderStatusConfirmed: {
			OrderStatusProcessing,
			OrderStatusCancelled,
		},
		OrderStatusProcessing: {
			OrderStatusShipped,
			OrderStatusCancelled,
		},
		OrderStatusShipped: {
			OrderStatusOutForDelivery,
			OrderStatusCancelled,
		},
		OrderStatusOutForDelivery: {
			OrderStatusDelivered,
			OrderStatusCancelled,
		},
	}

	allowedStatuses, exists := validTransitions[from]
	if !exists {
		return false
	}
	for _, status := range allowedStatuses {
		if status == to {
			return true
		}
	}
	return false
}
