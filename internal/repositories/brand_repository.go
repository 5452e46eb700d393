package repositories

import (
	"errors"
	"fmt"

	"artisanmart/internal/models"

	"gorm.io/gorm"
)

// BrandRepository defines the interface for brand data access.
type BrandRepository interface {
	GetByUser(userID uint) (*models.Brand, error)
	Create(brand *models.Brand) error
	Update(brand *models.Brand) error
}

// GORMBrandRepository is a GORM implementation of BrandRepository.
type GORMBrandRepository struct {
	db *gorm.DB
}

// NewGORMBrandRepository creates a new instance of GORMBrandRepository.
func NewGORMBrandRepository(db *gorm.DB) *GORMBrandRepository {
	return &GORMBrandRepository{db: db}
}

// GetByUser retrieves the brand owned by userID.
func (r *GORMBrandRepository) GetByUser(userID uint) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.First(&brand, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("brand for user %d not found: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get brand for user %d: %w", userID, err)
	}
	return &brand, nil
}

// Create creates a new brand in the database.
func (r *GORMBrandRepository) Create(brand *models.Brand) error {
	if err := r.db.Create(brand).Error; err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

// Update saves every field of an existing brand.
func (r *GORMBrandRepository) Update(brand *models.Brand) error {
	res := r.db.Save(brand)
	if res.Error != nil {
		return fmt.Errorf("failed to update brand: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("brand with ID %d not found for update: %w", brand.ID, ErrNotFound)
	}
	return nil
}
