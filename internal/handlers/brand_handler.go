package handlers

import (
	"artisanmart/internal/middleware"
	"artisanmart/internal/models"
	"artisanmart/internal/sandbox"

	"github.com/gofiber/fiber/v2"
)

// BrandHandler handles HTTP requests for the artisan's brand.
type BrandHandler struct {
	catalog *sandbox.Catalog
}

// NewBrandHandler creates a new BrandHandler.
func NewBrandHandler(catalog *sandbox.Catalog) *BrandHandler {
	return &BrandHandler{catalog: catalog}
}

// RegisterRoutes registers the brand routes behind auth.
func (h *BrandHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	brandRoutes := router.Group("/brands")
	brandRoutes.Get("/me", auth, h.HandleGetMyBrand)
	brandRoutes.Patch("/me", auth, h.HandleUpdateBrand)
	brandRoutes.Post("/", auth, h.HandleCreateBrand)
}

// HandleGetMyBrand returns the current user's brand.
func (h *BrandHandler) HandleGetMyBrand(c *fiber.Ctx) error {
	brand, err := h.catalog.MyBrand(middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve brand")
	}
	return c.JSON(brand)
}

// HandleCreateBrand creates the current user's brand.
func (h *BrandHandler) HandleCreateBrand(c *fiber.Ctx) error {
	var input models.BrandInput
	if ok, err := bindJSON(c, &input); !ok {
		return err
	}
	brand, err := h.catalog.CreateBrand(middleware.CurrentUser(c), input)
	if err != nil {
		return respondError(c, err, "Could not create brand")
	}
	return c.Status(fiber.StatusCreated).JSON(brand)
}

// HandleUpdateBrand updates the current user's brand.
func (h *BrandHandler) HandleUpdateBrand(c *fiber.Ctx) error {
	var input models.BrandInput
	if ok, err := bindJSON(c, &input); !ok {
		return err
	}
	brand, err := h.catalog.UpdateBrand(middleware.CurrentUser(c), input)
	if err != nil {
		return respondError(c, err, "Could not update brand")
	}
	return c.JSON(brand)
}
