package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"artisanmart/internal/models"
)

// ListProducts returns the logged-in artisan's products.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListAllProducts returns the public catalog.
func (c *Client) ListAllProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.doJSON(ctx, http.MethodGet, "/products/get-all-producs", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateProduct publishes a new product.
func (c *Client) CreateProduct(ctx context.Context, input models.ProductCreate) (*models.Product, error) {
	if input.Pictures == nil {
		input.Pictures = []string{}
	}
	if input.Videos == nil {
		input.Videos = []string{}
	}
	if input.Tags == nil {
		input.Tags = []string{}
	}

	var product models.Product
	if err := c.doJSON(ctx, http.MethodPost, "/products", nil, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes one of the logged-in artisan's products.
func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil, nil, nil)
}
