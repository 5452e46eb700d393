package services

import (
	"context"
	"fmt"

	"artisanmart/internal/models"
)

// ProfileService reads and edits the signed-in user's account and keeps the
// session's copy of the user in step with the API.
type ProfileService struct {
	api     ProfileAPI
	session Session
}

// NewProfileService creates a new ProfileService.
func NewProfileService(api ProfileAPI, session Session) *ProfileService {
	return &ProfileService{
		api:     api,
		session: session,
	}
}

// Get fetches the profile from the API.
func (s *ProfileService) Get(ctx context.Context) (*models.User, error) {
	user, err := s.api.GetProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return user, nil
}

// Update sends the partial update and applies it to the session user.
func (s *ProfileService) Update(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	if update.Empty() {
		return nil, fmt.Errorf("nothing to update")
	}
	user, err := s.api.UpdateProfile(ctx, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if err := s.session.UpdateUser(update.Apply); err != nil {
		return user, fmt.Errorf("profile saved but session not refreshed: %w", err)
	}
	return user, nil
}

// BecomeArtisan upgrades the account and switches the session role to
// artisan without a fresh login.
func (s *ProfileService) BecomeArtisan(ctx context.Context) error {
	if err := s.api.BecomeArtisan(ctx); err != nil {
		return fmt.Errorf("failed to become an artisan: %w", err)
	}
	return s.session.UpdateUser(func(u *models.User) {
		u.Role = models.RoleArtisan
	})
}
