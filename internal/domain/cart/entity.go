// internal/domain/cart/entity.go
package cart

import (
	"time"
)

// CartItem represents a cart line stored in the database for authenticated users.
// The (user_id, flower_id) pair is unique; re-adding a flower increments the
// quantity instead of creating a second row.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_items_user_flower" json:"user_id"`
	FlowerID  uint      `gorm:"not null;uniqueIndex:idx_cart_items_user_flower" json:"flower_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// SessionCart represents a guest cart stored in Redis
type SessionCart struct {
	SessionID string        `json:"session_id"`
	Items     []SessionLine `json:"items"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// SessionLine represents one cart line of a guest cart
type SessionLine struct {
	FlowerID uint `json:"flower_id"`
	Quantity int  `json:"quantity"`
}

// Line is the storage-independent view of one cart line, in insertion order.
type Line struct {
	FlowerID uint
	Quantity int
}
