package middleware

import (
	"log"
	"strings"

	"artisanmart/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UserKey is the Locals key the authenticated *models.User is stored under.
const UserKey = "user"

// TokenValidator resolves a bearer token to its user.
type TokenValidator interface {
	ValidateToken(token string) (*models.User, error)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(validator TokenValidator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && strings.EqualFold(parts[0], "Bearer")) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		user, err := validator.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		c.Locals(UserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthRequired.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(UserKey).(*models.User)
	return user
}
