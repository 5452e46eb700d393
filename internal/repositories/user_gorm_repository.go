package repositories

import (
	"errors"
	"fmt"

	"artisanmart/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(user *models.User) error {
	if user.Role == "" {
		user.Role = models.RoleCustomer
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(username string) (*models.User, error) {
	return r.first("username = ?", username, fmt.Sprintf("username %s", username))
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(email string) (*models.User, error) {
	return r.first("email = ?", email, fmt.Sprintf("email %s", email))
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(id uint) (*models.User, error) {
	return r.first("id = ?", id, fmt.Sprintf("ID %d", id))
}

// Update saves every field of an existing user.
func (r *GORMUserRepository) Update(user *models.User) error {
	res := r.db.Save(user)
	if res.Error != nil {
		return fmt.Errorf("failed to update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with ID %d not found for update: %w", user.ID, ErrNotFound)
	}
	return nil
}

func (r *GORMUserRepository) first(query string, arg interface{}, what string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user with %s not found: %w", what, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", what, err)
	}
	return &user, nil
}
