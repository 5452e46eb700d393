package handlers

import (
	"log"

	"artisanmart/internal/models"
	"artisanmart/internal/sandbox"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	accounts *sandbox.AccountService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts *sandbox.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/verify-email", h.HandleVerifyEmail)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Post("/forgot-password", h.HandleForgotPassword)
	authRoutes.Post("/reset-password", h.HandleResetPassword)
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var reg models.Registration
	if ok, err := bindJSON(c, &reg); !ok {
		return err
	}

	user, err := h.accounts.Register(reg)
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return respondError(c, err, "Could not register user")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful. Please check your email to verify your account.",
		"user":    user,
	})
}

// HandleVerifyEmail confirms an account from the emailed token.
func (h *AuthHandler) HandleVerifyEmail(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Token is required",
		})
	}
	if err := h.accounts.VerifyEmail(token); err != nil {
		return respondError(c, err, "Could not verify email")
	}
	return c.JSON(fiber.Map{"message": "Email verified successfully"})
}

// HandleLogin handles user login and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req models.Credentials
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}

	token, user, err := h.accounts.Login(req.Email, req.Password)
	if err != nil {
		log.Printf("Error during login for %s: %v", req.Email, err)
		return respondError(c, err, "Authentication failed")
	}

	return c.JSON(models.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        *user,
	})
}

// ForgotPasswordRequest is the body of POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleForgotPassword emails a reset link. The answer does not reveal
// whether the address is registered.
func (h *AuthHandler) HandleForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}
	if err := h.accounts.ForgotPassword(req.Email); err != nil {
		return respondError(c, err, "Could not send reset link")
	}
	return c.JSON(fiber.Map{"message": "If the email is registered, a password reset link has been sent."})
}

// ResetPasswordRequest is the body of POST /auth/reset-password.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// HandleResetPassword sets a new password.
func (h *AuthHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if ok, err := bindJSON(c, &req); !ok {
		return err
	}
	if err := h.accounts.ResetPassword(req.Token, req.NewPassword); err != nil {
		return respondError(c, err, "Could not reset password")
	}
	return c.JSON(fiber.Map{"message": "Password has been reset successfully"})
}
