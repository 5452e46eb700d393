package apiclient

import (
	"context"
	"net/http"

	"artisanmart/internal/models"
)

// GetProfile returns the logged-in user's profile.
func (c *Client) GetProfile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodGet, "/profile", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies a partial profile update and returns the new record.
func (c *Client) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := c.doJSON(ctx, http.MethodPatch, "/profile", nil, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// BecomeArtisan upgrades the logged-in user to the artisan role.
func (c *Client) BecomeArtisan(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPut, "/become-artisan", nil, nil, nil)
}
