// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// Order represents a paid order recorded from a completed checkout
// session. The Stripe session id is the idempotency key: one session,
// one order.
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;size:50" json:"order_number"`

	// Payment provider references
	StripeSessionID     string `gorm:"uniqueIndex;not null;size:255" json:"stripe_session_id"`
	StripePaymentIntent string `gorm:"size:255" json:"stripe_payment_intent"`
	CheckoutRef         string `gorm:"index;size:64" json:"checkout_ref"`

	// Customer
	CustomerName  string `gorm:"size:255" json:"customer_name"`
	CustomerEmail string `gorm:"index;size:255" json:"customer_email"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`

	// Shipping
	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`

	// Amounts in major currency units
	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2)" json:"subtotal"`
	ShippingAmount decimal.Decimal `gorm:"type:decimal(10,2)" json:"shipping_amount"`
	AmountTotal    decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount_total"`
	Currency       string          `gorm:"size:3;default:'USD'" json:"currency"`

	PaymentStatus string      `gorm:"size:50" json:"payment_status"`
	Status        OrderStatus `gorm:"not null;default:'confirmed'" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items         []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
	StatusHistory []OrderStatusHistory `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"status_history,omitempty"`
}

// OrderItem represents one line of an order
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	Name      string          `gorm:"not null;size:255" json:"name"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"` // Line total in major units
	CreatedAt time.Time       `json:"created_at"`
}

// OrderStatusHistory tracks order status changes, append only
type OrderStatusHistory struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	OrderID   uint        `gorm:"not null;index" json:"order_id"`
	Status    OrderStatus `gorm:"not null" json:"status"`
	Message   string      `gorm:"type:text" json:"message"`
	CreatedAt time.Time   `json:"created_at"`
}

// Address represents a shipping address (embedded in Order)
type Address struct {
	Line1      string `gorm:"size:255" json:"line1"`
	Line2      string `gorm:"size:255" json:"line2"`
	City       string `gorm:"size:100" json:"city"`
	State      string `gorm:"size:100" json:"state"`
	PostalCode string `gorm:"size:20" json:"postal_code"`
	Country    string `gorm:"size:2" json:"country"`
}

// TableName overrides
func (Order) TableName() string              { return "orders" }
func (OrderItem) TableName() string          { return "order_items" }
func (OrderStatusHistory) TableName() string { return "order_status_history" }

// Business methods for Order

// GenerateOrderNumber generates a unique order number
func (o *Order) GenerateOrderNumber() string {
	// Format: ORD-YYYYMMDD-XXXXX
	return fmt.Sprintf("ORD-%s-%05d", time.Now().Format("20060102"), o.ID)
}

// CanBeCancelled checks if order can be cancelled. Anything short of
// delivered can still be called off.
func (o *Order) CanBeCancelled() bool {
	return o.Status != OrderStatusDelivered && o.Status != OrderStatusCancelled
}

// AddStatusHistory adds a new status change to history
func (o *Order) AddStatusHistory(status OrderStatus, message string) {
	o.StatusHistory = append(o.StatusHistory, OrderStatusHistory{
		OrderID:   o.ID,
		Status:    status,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
}

// GetStatusColor returns the display color for a status
func GetStatusColor(status OrderStatus) string {
	colors := map[OrderStatus]string{
		OrderStatusConfirmed:      "#2563eb",
		OrderStatusProcessing:     "#7c3aed",
		OrderStatusShipped:        "#0891b2",
		OrderStatusOutForDelivery: "#ea580c",
		OrderStatusDelivered:      "#16a34a",
		OrderStatusCancelled:      "#dc2626",
	}
	if color, ok := colors[status]; ok {
		return color
	}
	return "#6b7280"
}

// GetStatusLabel returns the display label for a status
func GetStatusLabel(status OrderStatus) string {
	labels := map[OrderStatus]string{
		OrderStatusConfirmed:      "Order Confirmed",
		OrderStatusProcessing:     "Processing",
		OrderStatusShipped:        "Shipped",
		OrderStatusOutForDelivery: "Out for Delivery",
		OrderStatusDelivered:      "Delivered",
		OrderStatusCancelled:      "Cancelled",
	}
	if label, ok := labels[status]; ok {
		return label
	}
	return string(status)
}
