// internal/domain/cart/entity.go
package cart

import (
	"time"
)

// SessionCart represents a shopper's cart (stored in Redis)
type SessionCart struct {
	SessionID string     `json:"session_id"`
	Items     []CartLine `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// CartLine is one product line in a cart. Name, price and image are
// snapshotted when the product is added so the cart stays stable even
// if the catalog changes underneath it.
type CartLine struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"` // Unit price in cents at add time
	Image     string    `json:"image"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// CartTotals represents calculated cart totals. These are always
// derived from the lines, never stored.
type CartTotals struct {
	ItemCount     int   `json:"item_count"`     // Number of unique items
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	SubTotal      int64 `json:"sub_total"`      // Total before shipping
	ShippingCost  int64 `json:"shipping_cost"`
	TotalAmount   int64 `json:"total_amount"` // Final total
}
