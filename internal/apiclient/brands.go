package apiclient

import (
	"context"
	"errors"
	"net/http"

	"artisanmart/internal/models"
)

// GetMyBrand returns the logged-in artisan's brand, or nil without error
// when they have not created one yet.
func (c *Client) GetMyBrand(ctx context.Context) (*models.Brand, error) {
	var brand models.Brand
	err := c.doJSON(ctx, http.MethodGet, "/brands/me", nil, nil, &brand)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &brand, nil
}

// CreateBrand creates the logged-in artisan's brand.
func (c *Client) CreateBrand(ctx context.Context, input models.BrandInput) (*models.Brand, error) {
	var brand models.Brand
	if err := c.doJSON(ctx, http.MethodPost, "/brands", nil, input, &brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

// UpdateBrand replaces the logged-in artisan's brand details.
func (c *Client) UpdateBrand(ctx context.Context, input models.BrandInput) (*models.Brand, error) {
	var brand models.Brand
	if err := c.doJSON(ctx, http.MethodPatch, "/brands/me", nil, input, &brand); err != nil {
		return nil, err
	}
	return &brand, nil
}
