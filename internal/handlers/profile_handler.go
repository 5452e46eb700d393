package handlers

import (
	"artisanmart/internal/middleware"
	"artisanmart/internal/models"
	"artisanmart/internal/sandbox"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles the signed-in user's account.
type ProfileHandler struct {
	accounts *sandbox.AccountService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(accounts *sandbox.AccountService) *ProfileHandler {
	return &ProfileHandler{accounts: accounts}
}

// RegisterRoutes registers the profile routes behind auth.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/profile", auth, h.HandleGetProfile)
	router.Patch("/profile", auth, h.HandleUpdateProfile)
	router.Put("/become-artisan", auth, h.HandleBecomeArtisan)
}

// HandleGetProfile returns the current user.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

// HandleUpdateProfile applies a partial profile update.
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var update models.ProfileUpdate
	if ok, err := bindJSON(c, &update); !ok {
		return err
	}
	user, err := h.accounts.UpdateProfile(middleware.CurrentUser(c), update)
	if err != nil {
		return respondError(c, err, "Could not update profile")
	}
	return c.JSON(user)
}

// HandleBecomeArtisan upgrades the current user to the artisan role.
func (h *ProfileHandler) HandleBecomeArtisan(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := h.accounts.BecomeArtisan(user); err != nil {
		return respondError(c, err, "Could not update role")
	}
	return c.JSON(fiber.Map{
		"message": "You are now an artisan.",
		"user":    user,
	})
}
