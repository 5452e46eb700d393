package sandbox

import (
	"errors"
	"log"

	"artisanmart/internal/models"
	"artisanmart/internal/repositories"
)

// Events published by the catalog.
const (
	EventBrandSaved     = "brand.saved"
	EventProductCreated = "product.created"
	EventProductDeleted = "product.deleted"
)

// Publisher sends catalog events; it may be nil.
type Publisher interface {
	Publish(routingKey string, body []byte) error
}

// Catalog owns brands and product listings.
type Catalog struct {
	brands    repositories.BrandRepository
	products  repositories.ProductRepository
	publisher Publisher
}

// NewCatalog creates a new Catalog. publisher may be nil.
func NewCatalog(brands repositories.BrandRepository, products repositories.ProductRepository, publisher Publisher) *Catalog {
	return &Catalog{
		brands:    brands,
		products:  products,
		publisher: publisher,
	}
}

// MyBrand returns the brand owned by user.
func (c *Catalog) MyBrand(user *models.User) (*models.Brand, error) {
	brand, err := c.brands.GetByUser(user.ID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrNoBrand
	}
	return brand, err
}

// CreateBrand creates the artisan's single brand.
func (c *Catalog) CreateBrand(user *models.User, input models.BrandInput) (*models.Brand, error) {
	if user.Role != models.RoleArtisan {
		return nil, ErrNotArtisan
	}
	if _, err := c.brands.GetByUser(user.ID); err == nil {
		return nil, ErrBrandExists
	}
	brand := &models.Brand{
		UserID:      user.ID,
		Name:        input.Name,
		Description: input.Description,
		Logo:        input.Logo,
	}
	if err := c.brands.Create(brand); err != nil {
		return nil, err
	}
	c.publish(EventBrandSaved, map[string]interface{}{"brand_id": brand.ID, "user_id": user.ID})
	return brand, nil
}

// UpdateBrand replaces the editable fields of the user's brand.
func (c *Catalog) UpdateBrand(user *models.User, input models.BrandInput) (*models.Brand, error) {
	brand, err := c.MyBrand(user)
	if err != nil {
		return nil, err
	}
	brand.Name = input.Name
	brand.Description = input.Description
	if input.Logo != "" {
		brand.Logo = input.Logo
	}
	if err := c.brands.Update(brand); err != nil {
		return nil, err
	}
	c.publish(EventBrandSaved, map[string]interface{}{"brand_id": brand.ID, "user_id": user.ID})
	return brand, nil
}

// CreateProduct lists a product under the artisan's brand.
func (c *Catalog) CreateProduct(user *models.User, input models.ProductCreate) (*models.Product, error) {
	if user.Role != models.RoleArtisan {
		return nil, ErrNotArtisan
	}
	if _, err := c.brands.GetByUser(user.ID); err != nil {
		return nil, ErrBrandRequired
	}
	product := input.Product(user.ID)
	if err := c.products.Create(&product); err != nil {
		return nil, err
	}
	log.Printf("Product %d created by user %d", product.ID, user.ID)
	c.publish(EventProductCreated, map[string]interface{}{"product_id": product.ID, "user_id": user.ID})
	return &product, nil
}

// Products returns the user's own products.
func (c *Catalog) Products(user *models.User) ([]models.Product, error) {
	return c.products.GetByUser(user.ID)
}

// AllProducts returns every product.
func (c *Catalog) AllProducts() ([]models.Product, error) {
	return c.products.GetAll()
}

// DeleteProduct removes one of user's products.
func (c *Catalog) DeleteProduct(user *models.User, id uint) error {
	product, err := c.products.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if product.UserID != user.ID {
		return ErrForbidden
	}
	if err := c.products.Delete(id); err != nil {
		return err
	}
	c.publish(EventProductDeleted, map[string]interface{}{"product_id": id, "user_id": user.ID})
	return nil
}

func (c *Catalog) publish(event string, payload map[string]interface{}) {
	if c.publisher == nil {
		return
	}
	body, err := marshalEvent(event, payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	if err := c.publisher.Publish(event, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}
