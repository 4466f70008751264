// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/your-org/flowershop-backend/internal/config"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced flower does not exist.
var ErrNotFound = errors.New("flower not found")

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateFlowerRequest represents flower creation data
type CreateFlowerRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Price       int64  `json:"price" binding:"required,min=1"`
	ImageURL    string `json:"image_url"`
}

// UpdateFlowerRequest represents flower update data
type UpdateFlowerRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Price       *int64  `json:"price"`
	ImageURL    *string `json:"image_url"`
}

// Get retrieves a flower by its identifier
func (s *Service) Get(ctx context.Context, id uint) (*Flower, error) {
	var flower Flower
	err := s.db.WithContext(ctx).First(&flower, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve flower: %w", err)
	}
	return &flower, nil
}

// GetByName retrieves a flower by its display name
func (s *Service) GetByName(ctx context.Context, name string) (*Flower, error) {
	var flower Flower
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&flower).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve flower by name: %w", err)
	}
	return &flower, nil
}

// GetMany batch-resolves flowers by id. Missing ids are simply absent
// from the result, they are not an error.
func (s *Service) GetMany(ctx context.Context, ids []uint) (map[uint]Flower, error) {
	result := make(map[uint]Flower, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var flowers []Flower
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&flowers).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve flowers: %w", err)
	}

	for _, f := range flowers {
		result[f.ID] = f
	}
	return result, nil
}

// List returns the full storefront catalog
func (s *Service) List(ctx context.Context) ([]Flower, error) {
	var flowers []Flower
	if err := s.db.WithContext(ctx).Order("id").Find(&flowers).Error; err != nil {
		return nil, fmt.Errorf("failed to list flowers: %w", err)
	}
	return flowers, nil
}

// Create adds a new flower to the catalog
func (s *Service) Create(ctx context.Context, req *CreateFlowerRequest) (*Flower, error) {
	flower := Flower{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
	}

	if err := s.db.WithContext(ctx).Create(&flower).Error; err != nil {
		return nil, fmt.Errorf("failed to create flower: %w", err)
	}
	return &flower, nil
}

// Update modifies an existing flower. Only non-nil fields are applied.
func (s *Service) Update(ctx context.Context, id uint, req *UpdateFlowerRequest) (*Flower, error) {
	flower, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	if len(updates) == 0 {
		return flower, nil
	}

	if err := s.db.WithContext(ctx).Model(flower).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update flower: %w", err)
	}
	return flower, nil
}

// Delete removes a flower from the catalog. Existing order snapshots keep
// their copy of the name and price, so history is unaffected.
func (s *Service) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&Flower{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete flower: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
