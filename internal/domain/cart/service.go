// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"

	"github.com/your-org/flowershop-backend/internal/domain/catalog"
	"github.com/your-org/flowershop-backend/internal/domain/identity"
	"gorm.io/gorm"
)

// Catalog is the read-only lookup the cart needs from the catalog domain.
type Catalog interface {
	Get(ctx context.Context, id uint) (*catalog.Flower, error)
	GetMany(ctx context.Context, ids []uint) (map[uint]catalog.Flower, error)
}

// persistedCarts builds the account-backed cart variant for one user. The
// indirection exists for the same reason SessionStore and Catalog do: variant
// selection and merge logic stay testable without a database.
type persistedCarts func(userID uint) Cart

// Service handles cart business logic for both cart variants
type Service struct {
	sessions  SessionStore
	catalog   Catalog
	persisted persistedCarts
}

// NewService creates a new cart service
func NewService(db *gorm.DB, sessions SessionStore, cat Catalog) *Service {
	return &Service{
		sessions: sessions,
		catalog:  cat,
		persisted: func(userID uint) Cart {
			return NewPersistedCart(db, userID)
		},
	}
}

// ResolvedLine is one cart line joined against the live catalog
type ResolvedLine struct {
	Flower   catalog.Flower `json:"flower"`
	Quantity int            `json:"quantity"`
}

// Subtotal returns the line total at the current catalog price
func (l ResolvedLine) Subtotal() int64 {
	return l.Flower.Price * int64(l.Quantity)
}

// CartTotals represents calculated cart totals
type CartTotals struct {
	ItemCount     int   `json:"item_count"`     // Number of distinct lines
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	Subtotal      int64 `json:"subtotal"`       // In cents, at live prices
}

// CartView represents the resolved cart returned to callers
type CartView struct {
	Items  []ResolvedLine `json:"items"`
	Totals CartTotals     `json:"totals"`
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	FlowerID uint `json:"flower_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"omitempty,min=1"`
}

// ForIdentity selects the cart variant for the caller's identity. This is the
// only place the persisted/ephemeral split is decided.
func (s *Service) ForIdentity(id identity.Identity) Cart {
	if id.Authenticated() {
		return s.persisted(*id.UserID)
	}
	return NewEphemeralCart(s.sessions, id.SessionID)
}

// GetCart resolves the caller's cart against the catalog. Lines whose flower
// no longer exists are silently dropped rather than failing the whole cart.
func (s *Service) GetCart(ctx context.Context, id identity.Identity) (*CartView, error) {
	lines, err := s.ForIdentity(id).Lines(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(lines))
	for i, line := range lines {
		ids[i] = line.FlowerID
	}

	flowers, err := s.catalog.GetMany(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cart items: %w", err)
	}

	view := &CartView{Items: []ResolvedLine{}}
	for _, line := range lines {
		flower, ok := flowers[line.FlowerID]
		if !ok {
			continue
		}
		view.Items = append(view.Items, ResolvedLine{
			Flower:   flower,
			Quantity: line.Quantity,
		})
	}

	view.Totals = calculateTotals(view.Items)
	return view, nil
}

// AddToCart adds a flower to the caller's cart. The flower must exist in the
// catalog; adding an unknown flower fails with catalog.ErrNotFound.
func (s *Service) AddToCart(ctx context.Context, id identity.Identity, req *AddToCartRequest) (*CartView, error) {
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	if _, err := s.catalog.Get(ctx, req.FlowerID); err != nil {
		return nil, err
	}

	if err := s.ForIdentity(id).Add(ctx, req.FlowerID, quantity); err != nil {
		return nil, err
	}

	return s.GetCart(ctx, id)
}

// RemoveFromCart removes a whole line from the caller's cart
func (s *Service) RemoveFromCart(ctx context.Context, id identity.Identity, flowerID uint) (*CartView, error) {
	if err := s.ForIdentity(id).Remove(ctx, flowerID); err != nil {
		return nil, err
	}
	return s.GetCart(ctx, id)
}

// Clear drops every line from the caller's cart
func (s *Service) Clear(ctx context.Context, id identity.Identity) error {
	return s.ForIdentity(id).Clear(ctx)
}

// MergeSessionCart folds a guest session cart into an account cart, used when
// a browsing guest logs in. Quantities for the same flower add up. The session
// cart is dropped afterwards.
func (s *Service) MergeSessionCart(ctx context.Context, userID uint, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	guest := NewEphemeralCart(s.sessions, sessionID)
	lines, err := guest.Lines(ctx)
	if err != nil || len(lines) == 0 {
		return err
	}

	account := s.persisted(userID)
	for _, line := range lines {
		if err := account.Add(ctx, line.FlowerID, line.Quantity); err != nil {
			return fmt.Errorf("failed to merge session cart: %w", err)
		}
	}

	return guest.Clear(ctx)
}

func calculateTotals(items []ResolvedLine) CartTotals {
	var totals CartTotals
	totals.ItemCount = len(items)
	for _, item := range items {
		totals.TotalQuantity += item.Quantity
		totals.Subtotal += item.Subtotal()
	}
	return totals
}
