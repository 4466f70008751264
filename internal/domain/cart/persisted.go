// internal/domain/cart/persisted.go
package cart

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PersistedCart is the account-scoped cart variant, backed by cart_items rows.
type PersistedCart struct {
	db     *gorm.DB
	userID uint
}

// NewPersistedCart creates a cart over the persisted store for one account
func NewPersistedCart(db *gorm.DB, userID uint) *PersistedCart {
	return &PersistedCart{db: db, userID: userID}
}

// Lines returns the account's cart lines in insertion order
func (c *PersistedCart) Lines(ctx context.Context) ([]Line, error) {
	var items []CartItem
	err := c.db.WithContext(ctx).
		Where("user_id = ?", c.userID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user cart: %w", err)
	}

	lines := make([]Line, len(items))
	for i, item := range items {
		lines[i] = Line{FlowerID: item.FlowerID, Quantity: item.Quantity}
	}
	return lines, nil
}

// Add upserts the cart line with an atomic increment. Two concurrent adds for
// the same flower both land: the increment happens inside the database, not
// as a read-then-write in the engine.
func (c *PersistedCart) Add(ctx context.Context, flowerID uint, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	item := CartItem{
		UserID:   c.userID,
		FlowerID: flowerID,
		Quantity: quantity,
	}

	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "flower_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + EXCLUDED.quantity"),
			"updated_at": gorm.Expr("EXCLUDED.updated_at"),
		}),
	}).Create(&item).Error
	if err != nil {
		return fmt.Errorf("failed to add cart item: %w", err)
	}
	return nil
}

// Remove deletes the matching line entirely; absent lines are a no-op
func (c *PersistedCart) Remove(ctx context.Context, flowerID uint) error {
	err := c.db.WithContext(ctx).
		Where("user_id = ? AND flower_id = ?", c.userID, flowerID).
		Delete(&CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// Clear bulk-deletes every line for the account
func (c *PersistedCart) Clear(ctx context.Context) error {
	err := c.db.WithContext(ctx).
		Where("user_id = ?", c.userID).
		Delete(&CartItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear user cart: %w", err)
	}
	return nil
}
