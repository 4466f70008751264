// internal/domain/cart/ephemeral.go
package cart

import (
	"context"
	"fmt"
	"time"
)

// EphemeralCart is the session-scoped cart variant for anonymous browsers.
// Every mutation is written back to the session store immediately; the Save
// call doubles as the "session modified" signal the collaborator needs.
type EphemeralCart struct {
	store     SessionStore
	sessionID string
}

// NewEphemeralCart creates a cart over the session store for one browser session
func NewEphemeralCart(store SessionStore, sessionID string) *EphemeralCart {
	return &EphemeralCart{store: store, sessionID: sessionID}
}

// Lines returns the session's cart lines in insertion order
func (c *EphemeralCart) Lines(ctx context.Context) ([]Line, error) {
	sessionCart, err := c.store.Get(ctx, c.sessionID)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, len(sessionCart.Items))
	for i, item := range sessionCart.Items {
		lines[i] = Line{FlowerID: item.FlowerID, Quantity: item.Quantity}
	}
	return lines, nil
}

// Add increments the line for flowerID, appending a new line when absent
func (c *EphemeralCart) Add(ctx context.Context, flowerID uint, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	sessionCart, err := c.store.Get(ctx, c.sessionID)
	if err != nil {
		return err
	}

	found := false
	for i := range sessionCart.Items {
		if sessionCart.Items[i].FlowerID == flowerID {
			sessionCart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		sessionCart.Items = append(sessionCart.Items, SessionLine{
			FlowerID: flowerID,
			Quantity: quantity,
		})
	}

	sessionCart.UpdatedAt = time.Now().UTC()
	return c.store.Save(ctx, c.sessionID, sessionCart)
}

// Remove deletes the matching line entirely; absent lines are a no-op
func (c *EphemeralCart) Remove(ctx context.Context, flowerID uint) error {
	sessionCart, err := c.store.Get(ctx, c.sessionID)
	if err != nil {
		return err
	}

	for i := range sessionCart.Items {
		if sessionCart.Items[i].FlowerID == flowerID {
			sessionCart.Items = append(sessionCart.Items[:i], sessionCart.Items[i+1:]...)
			sessionCart.UpdatedAt = time.Now().UTC()
			return c.store.Save(ctx, c.sessionID, sessionCart)
		}
	}

	// Nothing matched, nothing to persist.
	return nil
}

// Clear drops the session cart key from the store
func (c *EphemeralCart) Clear(ctx context.Context) error {
	return c.store.Delete(ctx, c.sessionID)
}
