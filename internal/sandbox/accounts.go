// Package sandbox is a local stand-in for the marketplace API. It keeps
// accounts, brands and products in a gorm database and uploaded files in
// object storage.
package sandbox

import (
	"errors"
	"fmt"
	"log"
	"time"

	"artisanmart/internal/models"
	"artisanmart/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	verifyTokenTTL = 24 * time.Hour
	resetTokenTTL  = time.Hour
)

// AccountService handles registration, email verification, sign-in,
// password reset and profile changes.
type AccountService struct {
	users     repositories.UserRepository
	tokens    repositories.TokenRepository
	mailer    Mailer
	jwtSecret []byte
	tokenTTL  time.Duration // Duration for which JWT is valid
	publicURL string
}

// NewAccountService creates a new AccountService. Links in emails point at
// publicURL.
func NewAccountService(users repositories.UserRepository, tokens repositories.TokenRepository, mailer Mailer, jwtSecret, publicURL string) *AccountService {
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &AccountService{
		users:     users,
		tokens:    tokens,
		mailer:    mailer,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  24 * time.Hour,
		publicURL: publicURL,
	}
}

// Register creates an unverified customer account and emails a verification link.
func (s *AccountService) Register(reg models.Registration) (*models.User, error) {
	if existing, err := s.users.GetByEmail(reg.Email); err == nil && existing != nil {
		return nil, ErrAccountExists
	}
	if existing, err := s.users.GetByUsername(reg.Username); err == nil && existing != nil {
		return nil, ErrAccountExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: reg.Username,
		Email:    reg.Email,
		FullName: reg.FullName,
		Address:  reg.Address,
		Phone:    reg.Phone,
		Role:     models.RoleCustomer,
		Password: string(hashedPassword),
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.issueToken(user.ID, models.PurposeVerifyEmail, verifyTokenTTL)
	if err != nil {
		return nil, err
	}
	s.send(user.Email, "Verify your email",
		fmt.Sprintf("Confirm your account: %s/account/verify-email?token=%s", s.publicURL, token))
	return user, nil
}

// VerifyEmail marks the account behind token as verified.
func (s *AccountService) VerifyEmail(token string) error {
	vt, err := s.tokens.Consume(token, models.PurposeVerifyEmail)
	if err != nil {
		log.Printf("Email verification failed: %v", err)
		return ErrInvalidToken
	}
	user, err := s.users.GetByID(vt.UserID)
	if err != nil {
		return ErrUserNotFound
	}
	user.IsVerified = true
	return s.users.Update(user)
}

// Login checks the credentials of a verified account and issues a JWT.
func (s *AccountService) Login(email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if !user.IsVerified {
		return "", nil, ErrNotVerified
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, user, nil
}

// ValidateToken parses and validates a JWT and returns the user it names.
func (s *AccountService) ValidateToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid token payload")
	}
	user, err := s.users.GetByID(uint(id))
	if err != nil {
		return nil, fmt.Errorf("invalid token or user not found: %w", err)
	}
	return user, nil
}

// ForgotPassword emails a reset link when email belongs to an account.
// Unknown addresses are not reported.
func (s *AccountService) ForgotPassword(email string) error {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	token, err := s.issueToken(user.ID, models.PurposeResetPassword, resetTokenTTL)
	if err != nil {
		return err
	}
	s.send(user.Email, "Reset your password",
		fmt.Sprintf("Choose a new password: %s/account/reset-password?token=%s", s.publicURL, token))
	return nil
}

// ResetPassword sets a new password using a reset token.
func (s *AccountService) ResetPassword(token, newPassword string) error {
	vt, err := s.tokens.Consume(token, models.PurposeResetPassword)
	if err != nil {
		log.Printf("Password reset failed: %v", err)
		return ErrInvalidToken
	}
	user, err := s.users.GetByID(vt.UserID)
	if err != nil {
		return ErrUserNotFound
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)
	return s.users.Update(user)
}

// UpdateProfile applies a partial profile update.
func (s *AccountService) UpdateProfile(user *models.User, update models.ProfileUpdate) (*models.User, error) {
	update.Apply(user)
	if err := s.users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// BecomeArtisan upgrades a customer account.
func (s *AccountService) BecomeArtisan(user *models.User) error {
	if user.Role == models.RoleArtisan {
		return ErrAlreadyArtisan
	}
	user.Role = models.RoleArtisan
	return s.users.Update(user)
}

func (s *AccountService) issueToken(userID uint, purpose string, ttl time.Duration) (string, error) {
	vt := &models.VerificationToken{
		Token:     uuid.NewString(),
		UserID:    userID,
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := s.tokens.Create(vt); err != nil {
		return "", err
	}
	return vt.Token, nil
}

func (s *AccountService) send(to, subject, body string) {
	if err := s.mailer.Send(to, subject, body); err != nil {
		log.Printf("Warning: failed to send %q to %s: %v", subject, to, err)
	}
}
