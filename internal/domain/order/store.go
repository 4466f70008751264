// internal/domain/order/store.go
package order

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Store is the order persistence collaborator. Create assigns the identifier
// and commits transactionally; a failed Create leaves no trace.
type Store interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id uint) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	ListByUser(ctx context.Context, userID uint) ([]Order, error)
	UpdateStatus(ctx context.Context, id uint, status OrderStatus) error
}

// GormStore implements Store on top of postgres
type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

// NewGormStore creates an order store backed by the database
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Create persists a new order inside a transaction
func (s *GormStore) Create(ctx context.Context, o *Order) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(o).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByID retrieves an order by its identifier
func (s *GormStore) GetByID(ctx context.Context, id uint) (*Order, error) {
	var o Order
	err := s.db.WithContext(ctx).First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &o, nil
}

// List returns all orders, newest first, for the back office
func (s *GormStore) List(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListByUser returns one account's orders, newest first
func (s *GormStore) ListByUser(ctx context.Context, userID uint) ([]Order, error) {
	var orders []Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus changes only the status column; the item snapshot and totals
// are never rewritten.
func (s *GormStore) UpdateStatus(ctx context.Context, id uint, status OrderStatus) error {
	result := s.db.WithContext(ctx).
		Model(&Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
