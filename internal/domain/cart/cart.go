// internal/domain/cart/cart.go
package cart

import (
	"context"
)

// Cart is the unified view over the two cart representations. PersistedCart
// backs authenticated accounts with database rows, EphemeralCart backs
// anonymous browsers with a Redis session entry. Callers pick the variant
// once per request via Service.ForIdentity and never branch afterwards.
type Cart interface {
	// Lines returns the raw cart lines in insertion order.
	Lines(ctx context.Context) ([]Line, error)

	// Add increments the line for flowerID by quantity, creating it at
	// that quantity when absent. Quantity must be >= 1.
	Add(ctx context.Context, flowerID uint, quantity int) error

	// Remove deletes the whole line for flowerID. Removing a flower that
	// is not in the cart is a no-op, not an error.
	Remove(ctx context.Context, flowerID uint) error

	// Clear drops every line from the cart.
	Clear(ctx context.Context) error
}
