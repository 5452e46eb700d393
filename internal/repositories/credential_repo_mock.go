package repositories

import (
	"sync"

	"artisanmart/internal/models"
)

// MockCredentialRepository is an in-memory implementation of CredentialRepository.
type MockCredentialRepository struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewMockCredentialRepository creates a new instance of MockCredentialRepository.
func NewMockCredentialRepository() *MockCredentialRepository {
	return &MockCredentialRepository{
		entries: make(map[string]string),
	}
}

// Load returns the stored entries.
func (r *MockCredentialRepository) Load() (string, bool, string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, hasToken := r.entries[models.CredentialKeyToken]
	user, hasUser := r.entries[models.CredentialKeyUser]
	return token, hasToken, user, hasUser, nil
}

// Save stores both entries.
func (r *MockCredentialRepository) Save(token, user string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[models.CredentialKeyToken] = token
	r.entries[models.CredentialKeyUser] = user
	return nil
}

// Clear removes both entries.
func (r *MockCredentialRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, models.CredentialKeyToken)
	delete(r.entries, models.CredentialKeyUser)
	return nil
}

// Put sets a single raw entry. Tests use it to seed inconsistent stores.
func (r *MockCredentialRepository) Put(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[key] = value
}
