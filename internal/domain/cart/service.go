// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrProductSoldOut   = errors.New("product is sold out")
	ErrItemNotInCart    = errors.New("item not found in cart")
	ErrSessionRequired  = errors.New("session ID required for cart")
	ErrQuantityTooSmall = errors.New("quantity must be at least 1")
)

// Service handles cart business logic. Carts live in Redis keyed by
// session id; every operation re-reads the stored cart first so a
// shopper sees the same cart from any tab.
type Service struct {
	catalog     *catalog.Service
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new cart service
func NewService(catalogService *catalog.Service, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		catalog:     catalogService,
		redisClient: redisClient,
		config:      cfg,
	}
}

// CartResponse represents a shopping cart with items and summary
type CartResponse struct {
	SessionID string     `json:"session_id"`
	Items     []CartLine `json:"items"`
	Totals    CartTotals `json:"totals"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest represents update cart item request. Quantity
// below 1 removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart retrieves the cart for a session
func (s *Service) GetCart(ctx context.Context, sessionID string) (*CartResponse, error) {
	sessionCart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(sessionCart), nil
}

// AddToCart adds a product to the cart, merging into an existing line
// when the product is already present. The combined quantity is capped
// at the configured maximum.
func (s *Service) AddToCart(ctx context.Context, sessionID string, req *AddToCartRequest) (*CartResponse, error) {
	if req.Quantity < 1 {
		return nil, ErrQuantityTooSmall
	}

	prod, err := s.catalog.GetProduct(req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if !prod.InStock {
		return nil, ErrProductSoldOut
	}

	sessionCart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	maxQty := s.config.Store.MaxItemQuantity
	merged := false
	for i := range sessionCart.Items {
		if sessionCart.Items[i].ProductID == req.ProductID {
			newQuantity := sessionCart.Items[i].Quantity + req.Quantity
			if newQuantity > maxQty {
				newQuantity = maxQty
			}
			sessionCart.Items[i].Quantity = newQuantity
			merged = true
			break
		}
	}

	if !merged {
		quantity := req.Quantity
		if quantity > maxQty {
			quantity = maxQty
		}
		sessionCart.Items = append(sessionCart.Items, CartLine{
			ProductID: prod.ID,
			Name:      prod.Name,
			Price:     prod.Price,
			Image:     prod.Image,
			Quantity:  quantity,
			AddedAt:   time.Now().UTC(),
		})
	}

	sessionCart.UpdatedAt = time.Now().UTC()
	if err := s.saveCart(ctx, sessionID, sessionCart); err != nil {
		return nil, err
	}
	return s.toResponse(sessionCart), nil
}

// UpdateCartItem sets the quantity of a line. Quantity below 1 removes
// the line; quantity above the maximum is clamped.
func (s *Service) UpdateCartItem(ctx context.Context, sessionID string, productID uint, quantity int) (*CartResponse, error) {
	sessionCart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range sessionCart.Items {
		if sessionCart.Items[i].ProductID == productID {
			if quantity < 1 {
				sessionCart.Items = append(sessionCart.Items[:i], sessionCart.Items[i+1:]...)
			} else {
				if quantity > s.config.Store.MaxItemQuantity {
					quantity = s.config.Store.MaxItemQuantity
				}
				sessionCart.Items[i].Quantity = quantity
			}
			found = true
			break
		}
	}

	if !found {
		return nil, ErrItemNotInCart
	}

	sessionCart.UpdatedAt = time.Now().UTC()
	if err := s.saveCart(ctx, sessionID, sessionCart); err != nil {
		return nil, err
	}
	return s.toResponse(sessionCart), nil
}

// RemoveFromCart removes a line. Removing a product that is not in the
// cart is a no-op.
func (s *Service) RemoveFromCart(ctx context.Context, sessionID string, productID uint) (*CartResponse, error) {
	sessionCart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for i := range sessionCart.Items {
		if sessionCart.Items[i].ProductID == productID {
			sessionCart.Items = append(sessionCart.Items[:i], sessionCart.Items[i+1:]...)
			break
		}
	}

	sessionCart.UpdatedAt = time.Now().UTC()
	if err := s.saveCart(ctx, sessionID, sessionCart); err != nil {
		return nil, err
	}
	return s.toResponse(sessionCart), nil
}

// ClearCart removes all items from the cart
func (s *Service) ClearCart(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrSessionRequired
	}
	return s.redisClient.Del(ctx, cartKey(sessionID)).Err()
}

// GetCartItemCount returns the total quantity across all lines
func (s *Service) GetCartItemCount(ctx context.Context, sessionID string) (int, error) {
	sessionCart, err := s.loadCart(ctx, sessionID)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, line := range sessionCart.Items {
		count += line.Quantity
	}
	return count, nil
}

// CalculateTotals derives the cart summary from its lines. Shipping is
// free above the configured threshold, otherwise a flat fee; an empty
// cart ships for nothing.
func (s *Service) CalculateTotals(items []CartLine) CartTotals {
	var totals CartTotals

	totals.ItemCount = len(items)
	for _, line := range items {
		totals.TotalQuantity += line.Quantity
		totals.SubTotal += line.Price * int64(line.Quantity)
	}

	if totals.SubTotal > 0 && totals.SubTotal < s.config.Store.FreeShippingThresholdCent {
		totals.ShippingCost = s.config.Store.FlatShippingCent
	}
	totals.TotalAmount = totals.SubTotal + totals.ShippingCost

	return totals
}

// Private helper methods

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

func (s *Service) loadCart(ctx context.Context, sessionID string) (*SessionCart, error) {
	if sessionID == "" {
		return nil, ErrSessionRequired
	}

	cartData, err := s.redisClient.Get(ctx, cartKey(sessionID)).Result()
	if err == redis.Nil {
		// Cart doesn't exist, return empty cart
		return &SessionCart{
			SessionID: sessionID,
			Items:     []CartLine{},
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
			ExpiresAt: time.Now().UTC().Add(s.config.Store.CartTTL),
		}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var sessionCart SessionCart
	if err := json.Unmarshal([]byte(cartData), &sessionCart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &sessionCart, nil
}

func (s *Service) saveCart(ctx context.Context, sessionID string, sessionCart *SessionCart) error {
	cartData, err := json.Marshal(sessionCart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	return s.redisClient.Set(ctx, cartKey(sessionID), cartData, s.config.Store.CartTTL).Err()
}

func (s *Service) toResponse(sessionCart *SessionCart) *CartResponse {
	return &CartResponse{
		SessionID: sessionCart.SessionID,
		Items:     sessionCart.Items,
		Totals:    s.CalculateTotals(sessionCart.Items),
		CreatedAt: sessionCart.CreatedAt,
		UpdatedAt: sessionCart.UpdatedAt,
	}
}
