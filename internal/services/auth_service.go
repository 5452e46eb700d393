package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"artisanmart/internal/forms"
	"artisanmart/internal/models"
)

// ErrMissingToken is returned when a verification or reset link carries no token.
var ErrMissingToken = errors.New("invalid link: no token provided")

// AuthService runs the account flows: registration, email verification,
// sign-in, sign-out and password reset.
type AuthService struct {
	api     AuthAPI
	session Session
}

// NewAuthService creates a new AuthService.
func NewAuthService(api AuthAPI, session Session) *AuthService {
	return &AuthService{
		api:     api,
		session: session,
	}
}

// Register validates the signup form and creates the account. The returned
// message tells the user a verification email was sent.
func (s *AuthService) Register(ctx context.Context, form forms.SignupForm) (string, error) {
	reg, err := form.Validate()
	if err != nil {
		return "", err
	}
	msg, err := s.api.Register(ctx, reg)
	if err != nil {
		log.Printf("Error registering %s: %v", reg.Email, err)
		return "", fmt.Errorf("registration failed: %w", err)
	}
	if msg == "" {
		msg = "Registration successful. Please check your email to verify your account."
	}
	return msg, nil
}

// VerifyEmail confirms the account behind token.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}
	msg, err := s.api.VerifyEmail(ctx, token)
	if err != nil {
		return "", fmt.Errorf("email verification failed: %w", err)
	}
	return msg, nil
}

// Login validates the credentials and signs in through the session, which
// persists the token and user on success and records the error otherwise.
func (s *AuthService) Login(ctx context.Context, form forms.LoginForm) error {
	creds, err := form.Validate()
	if err != nil {
		return err
	}
	return s.session.Authenticate(func() (string, models.User, error) {
		resp, err := s.api.Login(ctx, creds)
		if err != nil {
			log.Printf("Login failed for %s: %v", creds.Email, err)
			return "", models.User{}, err
		}
		return resp.AccessToken, resp.User, nil
	})
}

// Logout ends the session.
func (s *AuthService) Logout() {
	s.session.Logout()
}

// ForgotPassword requests a reset link for the form's email address.
func (s *AuthService) ForgotPassword(ctx context.Context, form forms.ForgotPasswordForm) (string, error) {
	if err := form.Validate(); err != nil {
		return "", err
	}
	msg, err := s.api.ForgotPassword(ctx, strings.TrimSpace(form.Email))
	if err != nil {
		return "", fmt.Errorf("password reset request failed: %w", err)
	}
	return msg, nil
}

// ResetPassword sets a new password. A form without a token fails locally
// without contacting the API.
func (s *AuthService) ResetPassword(ctx context.Context, form forms.ResetPasswordForm) (string, error) {
	if err := form.Validate(); err != nil {
		return "", err
	}
	msg, err := s.api.ResetPassword(ctx, form.Token, form.NewPassword)
	if err != nil {
		return "", fmt.Errorf("password reset failed: %w", err)
	}
	return msg, nil
}
