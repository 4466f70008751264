// internal/domain/order/entity.go
package order

import (
	"time"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order represents a placed order. The Items snapshot is written once at
// checkout and never mutated afterwards; later catalog price or name changes
// do not reach back into order history.
type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UserID          *uint       `gorm:"index" json:"user_id"` // nil for guest checkout
	CustomerName    string      `gorm:"not null;size:100" json:"customer_name"`
	CustomerPhone   string      `gorm:"not null;size:20" json:"customer_phone"`
	CustomerAddress string      `gorm:"type:text;not null" json:"customer_address"`
	Items           []OrderItem `gorm:"serializer:json;type:text;not null" json:"items"`
	TotalPrice      int64       `gorm:"not null" json:"total_price"` // In cents
	Status          OrderStatus `gorm:"not null;default:'pending';size:20" json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// OrderItem is one serialized snapshot line of an order
type OrderItem struct {
	FlowerID uint   `json:"flower_id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"` // Unit price in cents at checkout time
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}

// GetFormattedTotal returns the total as a float amount
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.TotalPrice) / 100
}

// CanTransitionTo reports whether an admin status change is allowed
func (o *Order) CanTransitionTo(next OrderStatus) bool {
	switch o.Status {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusCompleted || next == OrderStatusCancelled
	default:
		return false
	}
}
