package repositories

import (
	"errors"
	"fmt"
	"time"

	"artisanmart/internal/models"

	"gorm.io/gorm"
)

// TokenRepository stores single-use verification and reset tokens.
type TokenRepository interface {
	Create(token *models.VerificationToken) error
	Consume(token, purpose string) (*models.VerificationToken, error)
}

// GORMTokenRepository is a GORM implementation of TokenRepository.
type GORMTokenRepository struct {
	db *gorm.DB
}

// NewGORMTokenRepository creates a new instance of GORMTokenRepository.
func NewGORMTokenRepository(db *gorm.DB) *GORMTokenRepository {
	return &GORMTokenRepository{db: db}
}

// Create stores a new token.
func (r *GORMTokenRepository) Create(token *models.VerificationToken) error {
	if err := r.db.Create(token).Error; err != nil {
		return fmt.Errorf("failed to create token: %w", err)
	}
	return nil
}

// Consume deletes and returns an unexpired token with the given purpose.
func (r *GORMTokenRepository) Consume(token, purpose string) (*models.VerificationToken, error) {
	var vt models.VerificationToken
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&vt, "token = ? AND purpose = ?", token, purpose).Error; err != nil {
			return err
		}
		return tx.Delete(&vt).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s token not found: %w", purpose, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to consume %s token: %w", purpose, err)
	}
	if time.Now().After(vt.ExpiresAt) {
		return nil, fmt.Errorf("%s token expired: %w", purpose, ErrNotFound)
	}
	return &vt, nil
}
