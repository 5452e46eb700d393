package handlers

import (
	"fmt"
	"log"
	"strconv"

	"artisanmart/internal/middleware"
	"artisanmart/internal/models"
	"artisanmart/internal/sandbox"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	catalog *sandbox.Catalog
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalog *sandbox.Catalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// RegisterRoutes registers the product routes. The full listing is public;
// everything else requires auth.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/get-all-producs", h.HandleGetAllProducts)
	productRoutes.Get("/", auth, h.HandleGetMyProducts)
	productRoutes.Post("/", auth, h.HandleCreateProduct)
	productRoutes.Delete("/:id", auth, h.HandleDeleteProduct)
}

// HandleGetAllProducts lists every product.
func (h *ProductHandler) HandleGetAllProducts(c *fiber.Ctx) error {
	products, err := h.catalog.AllProducts()
	if err != nil {
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(nonNilProducts(products))
}

// HandleGetMyProducts lists the current user's products.
func (h *ProductHandler) HandleGetMyProducts(c *fiber.Ctx) error {
	products, err := h.catalog.Products(middleware.CurrentUser(c))
	if err != nil {
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(nonNilProducts(products))
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductCreate
	if ok, err := bindJSON(c, &input); !ok {
		return err
	}
	product, err := h.catalog.CreateProduct(middleware.CurrentUser(c), input)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleDeleteProduct deletes a product owned by the current user.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("Invalid product ID %q", c.Params("id")),
		})
	}
	if err := h.catalog.DeleteProduct(middleware.CurrentUser(c), uint(id)); err != nil {
		return respondError(c, err, "Could not delete product")
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully."})
}

func nonNilProducts(products []models.Product) []models.Product {
	if products == nil {
		return []models.Product{}
	}
	return products
}
