package handlers

import (
	"errors"
	"log"
	"time"

	"artisanmart/internal/middleware"
	"artisanmart/internal/sandbox"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// bodyLimit leaves room for a batch of files at the per-file size limit.
const bodyLimit = 64 * 1024 * 1024

// Services are the sandbox services the handlers expose.
type Services struct {
	Accounts *sandbox.AccountService
	Catalog  *sandbox.Catalog
	Uploads  *sandbox.UploadService
}

// NewApp builds the sandbox API: every marketplace endpoint plus /health.
func NewApp(svc Services) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{"message": err.Error()})
		},
	})

	app.Use(logger.New(logger.Config{Output: log.Writer()}))

	auth := middleware.AuthRequired(svc.Accounts)

	NewAuthHandler(svc.Accounts).RegisterRoutes(app)
	NewProfileHandler(svc.Accounts).RegisterRoutes(app, auth)
	NewBrandHandler(svc.Catalog).RegisterRoutes(app, auth)
	NewProductHandler(svc.Catalog).RegisterRoutes(app, auth)
	NewUploadHandler(svc.Uploads).RegisterRoutes(app, auth)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app
}
