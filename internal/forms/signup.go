package forms

import (
	"strings"

	"artisanmart/internal/models"
)

// SignupForm is the account creation form.
type SignupForm struct {
	Username        string `form:"username" validate:"omitempty,max=100"`
	FullName        string `form:"full_name" validate:"required,min=2"`
	Email           string `form:"email" validate:"required,email"`
	Phone           string `form:"phone" validate:"required"`
	Address         string `form:"address" validate:"required"`
	Password        string `form:"password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=Password"`
	TermsAccepted   bool   `form:"terms" validate:"eq=true"`
}

var signupMessages = map[string]string{
	"full_name":                 "Full name must be at least 2 characters.",
	"email":                     "Invalid email address",
	"phone":                     "Phone number is required",
	"address":                   "Address is required",
	"password":                  "Password must be at least 8 characters",
	"confirm_password.required": "Confirm password is required",
	"confirm_password.eqfield":  "Passwords do not match",
	"terms":                     "You must agree to the terms and conditions",
}

// Validate checks the form and returns the registration body. The username
// defaults to the local part of the email address.
func (f SignupForm) Validate() (models.Registration, error) {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address = strings.TrimSpace(f.Address)
	f.Username = strings.TrimSpace(f.Username)

	errs := ValidationErrors{}
	check(f, errs, signupMessages)
	if err := errs.orNil(); err != nil {
		return models.Registration{}, err
	}

	username := f.Username
	if username == "" {
		username, _, _ = strings.Cut(f.Email, "@")
	}
	return models.Registration{
		Username: username,
		Email:    f.Email,
		Password: f.Password,
		FullName: f.FullName,
		Address:  f.Address,
		Phone:    f.Phone,
	}, nil
}

// ResetPasswordForm is the form behind a password reset link.
type ResetPasswordForm struct {
	Token           string `form:"token" validate:"required"`
	NewPassword     string `form:"new_password" validate:"required,min=8"`
	ConfirmPassword string `form:"confirm_password" validate:"required,eqfield=NewPassword"`
}

var resetMessages = map[string]string{
	"token":                     "Invalid reset link. No token provided.",
	"new_password":              "Password must be at least 8 characters",
	"confirm_password.required": "Confirm password is required",
	"confirm_password.eqfield":  "Passwords do not match",
}

// Validate checks the reset form.
func (f ResetPasswordForm) Validate() error {
	f.Token = strings.TrimSpace(f.Token)
	errs := ValidationErrors{}
	check(f, errs, resetMessages)
	return errs.orNil()
}

// ForgotPasswordForm asks for the address to send a reset link to.
type ForgotPasswordForm struct {
	Email string `form:"email" validate:"required,email"`
}

// Validate checks the email address.
func (f ForgotPasswordForm) Validate() error {
	f.Email = strings.TrimSpace(f.Email)
	errs := ValidationErrors{}
	check(f, errs, map[string]string{"email": "Invalid email address"})
	return errs.orNil()
}

// LoginForm holds sign-in credentials.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// Validate checks the credentials and returns the login body.
func (f LoginForm) Validate() (models.Credentials, error) {
	f.Email = strings.TrimSpace(f.Email)
	errs := ValidationErrors{}
	check(f, errs, map[string]string{
		"email":    "Invalid email address",
		"password": "Password is required",
	})
	if err := errs.orNil(); err != nil {
		return models.Credentials{}, err
	}
	return models.Credentials{Email: f.Email, Password: f.Password}, nil
}
