package repositories

import (
	"fmt"

	"artisanmart/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCredentialRepository is a GORM implementation of CredentialRepository.
type GORMCredentialRepository struct {
	db *gorm.DB
}

// NewGORMCredentialRepository creates a new instance of GORMCredentialRepository.
func NewGORMCredentialRepository(db *gorm.DB) *GORMCredentialRepository {
	return &GORMCredentialRepository{
		db: db,
	}
}

// Load reads both credential entries.
func (r *GORMCredentialRepository) Load() (string, bool, string, bool, error) {
	var rows []models.Credential
	err := r.db.Where("key IN ?", []string{models.CredentialKeyToken, models.CredentialKeyUser}).Find(&rows).Error
	if err != nil {
		return "", false, "", false, fmt.Errorf("failed to load credentials: %w", err)
	}

	var token, user string
	var hasToken, hasUser bool
	for _, row := range rows {
		switch row.Key {
		case models.CredentialKeyToken:
			token, hasToken = row.Value, true
		case models.CredentialKeyUser:
			user, hasUser = row.Value, true
		}
	}
	return token, hasToken, user, hasUser, nil
}

// Save writes the token and user entries in one transaction.
func (r *GORMCredentialRepository) Save(token, user string) error {
	rows := []models.Credential{
		{Key: models.CredentialKeyToken, Value: token},
		{Key: models.CredentialKeyUser, Value: user},
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&rows).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

// Clear removes both entries. Clearing an empty store is not an error.
func (r *GORMCredentialRepository) Clear() error {
	err := r.db.Where("key IN ?", []string{models.CredentialKeyToken, models.CredentialKeyUser}).
		Delete(&models.Credential{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}
