package sandbox

import "errors"

// Failures the handlers translate into HTTP statuses. The error text is the
// message shown to API clients.
var (
	ErrAccountExists      = errors.New("User with this email or username already exists.")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrNotVerified        = errors.New("Please verify your email before logging in.")
	ErrInvalidToken       = errors.New("Invalid or expired token")
	ErrUserNotFound       = errors.New("User not found")
	ErrAlreadyArtisan     = errors.New("You are already an artisan.")
	ErrNotArtisan         = errors.New("Need to register as Artisan.")
	ErrBrandExists        = errors.New("You can create only one brand.")
	ErrNoBrand            = errors.New("You have not created a brand")
	ErrBrandRequired      = errors.New("Brand does not exist.")
	ErrProductNotFound    = errors.New("Product not found")
	ErrForbidden          = errors.New("You do not have permission to delete this product")
	ErrInvalidUploadType  = errors.New("Invalid type. Must be one of: profile, product photo, product video")
	ErrFileTooLarge       = errors.New("File size should not exceed 5MB")
)

// UnsupportedFileError reports an upload whose sniffed type is not allowed.
type UnsupportedFileError struct {
	ContentType string
	Allowed     string
}

func (e *UnsupportedFileError) Error() string {
	return "Invalid file type: " + e.ContentType + ". Only " + e.Allowed + " are allowed."
}
