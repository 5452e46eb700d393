package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"artisanmart/internal/models"
)

// Register creates an account; the API answers by sending a verification email.
func (c *Client) Register(ctx context.Context, reg models.Registration) (string, error) {
	var resp models.MessageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, reg, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// VerifyEmail confirms an email address with the token from the email link.
func (c *Client) VerifyEmail(ctx context.Context, token string) (string, error) {
	var resp models.MessageResponse
	query := url.Values{"token": {token}}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/verify-email", query, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login exchanges credentials for a bearer token and the user record.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", nil, creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ForgotPassword asks the API to email a password reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp models.MessageResponse
	body := map[string]string{"email": email}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/forgot-password", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ResetPassword sets a new password using a reset token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	var resp models.MessageResponse
	body := map[string]string{"token": token, "new_password": newPassword}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/reset-password", nil, body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}
