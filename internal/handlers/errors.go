package handlers

import (
	"errors"
	"fmt"
	"log"

	"artisanmart/internal/sandbox"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// statusFor maps service failures onto HTTP statuses.
func statusFor(err error) int {
	var unsupported *sandbox.UnsupportedFileError
	switch {
	case errors.As(err, &unsupported):
		return fiber.StatusBadRequest
	case errors.Is(err, sandbox.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, sandbox.ErrNotVerified), errors.Is(err, sandbox.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, sandbox.ErrUserNotFound), errors.Is(err, sandbox.ErrNoBrand),
		errors.Is(err, sandbox.ErrProductNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, sandbox.ErrAccountExists), errors.Is(err, sandbox.ErrInvalidToken),
		errors.Is(err, sandbox.ErrAlreadyArtisan), errors.Is(err, sandbox.ErrNotArtisan),
		errors.Is(err, sandbox.ErrBrandExists), errors.Is(err, sandbox.ErrBrandRequired),
		errors.Is(err, sandbox.ErrInvalidUploadType), errors.Is(err, sandbox.ErrFileTooLarge):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// respondError writes err with the status it maps to. Unexpected errors keep
// a generic message and carry the cause in "error".
func respondError(c *fiber.Ctx, err error, fallback string) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("%s: %v", fallback, err)
		return c.Status(status).JSON(fiber.Map{
			"message": fallback,
			"error":   err.Error(),
		})
	}
	return c.Status(status).JSON(fiber.Map{
		"message": err.Error(),
	})
}

// bindJSON parses the JSON body into out and validates it. When it returns
// false a 400 response has been written and its error must be returned.
func bindJSON(c *fiber.Ctx, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := validate.Struct(out); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   err.Error(),
			})
		}
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	return true, nil
}
