package services

import (
	"context"
	"fmt"

	"artisanmart/internal/apiclient"
	"artisanmart/internal/forms"
	"artisanmart/internal/models"
)

// BrandService manages the signed-in artisan's brand.
type BrandService struct {
	api BrandAPI
}

// NewBrandService creates a new BrandService.
func NewBrandService(api BrandAPI) *BrandService {
	return &BrandService{api: api}
}

// GetMine returns the user's brand, or nil when none has been created yet.
func (s *BrandService) GetMine(ctx context.Context) (*models.Brand, error) {
	brand, err := s.api.GetMyBrand(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load brand: %w", err)
	}
	return brand, nil
}

// Save validates the form, uploads the logo if one is staged, and creates the
// brand or updates the existing one.
func (s *BrandService) Save(ctx context.Context, form forms.BrandForm) (*models.Brand, error) {
	input, err := form.Validate()
	if err != nil {
		return nil, err
	}

	existing, err := s.api.GetMyBrand(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load brand: %w", err)
	}

	if form.Logo != nil {
		urls, err := s.api.Upload(ctx, apiclient.UploadProfile, uploadFiles([]forms.File{form.Logo}))
		if err != nil {
			return nil, fmt.Errorf("failed to upload logo: %w", err)
		}
		if len(urls) > 0 {
			input.Logo = urls[0]
		}
	} else if existing != nil {
		input.Logo = existing.Logo
	}

	if existing == nil {
		brand, err := s.api.CreateBrand(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to create brand: %w", err)
		}
		return brand, nil
	}
	brand, err := s.api.UpdateBrand(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}
	return brand, nil
}
