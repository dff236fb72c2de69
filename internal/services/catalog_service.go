// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/lapalette/backend/internal/models"
)

// CatalogService is read-only: products are provisioned by seed data and
// only active ones are ever visible.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{
		db: db,
	}
}

func (s *CatalogService) ListProducts() ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := s.db.Where("active = ?", true).Order("id ASC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// GetProduct treats inactive products the same as missing ones.
func (s *CatalogService) GetProduct(productID int64) (*models.Product, error) {
	var product models.Product
	err := s.db.Where("id = ? AND active = ?", productID, true).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	return &product, nil
}
