// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Flower represents a sellable catalog item
type Flower struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Price       int64          `gorm:"not null" json:"price"` // Price in cents
	ImageURL    string         `gorm:"size:200" json:"image_url"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Flower) TableName() string {
	return "flowers"
}

// GetFormattedPrice returns the price as a float amount
func (f *Flower) GetFormattedPrice() float64 {
	return float64(f.Price) / 100
}
