package models

import "time"

// Roles a marketplace account can hold.
const (
	RoleCustomer = "customer"
	RoleArtisan  = "artisan"
)

// User is the account record returned by the API and kept in the session.
type User struct {
	ID         uint      `json:"user_id" gorm:"primaryKey" validate:"gt=0"`
	Username   string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"omitempty,max=100"`
	Email      string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	FullName   string    `json:"full_name" gorm:"type:varchar(255)"`
	Address    string    `json:"address"`
	Phone      string    `json:"phone" gorm:"type:varchar(50)"`
	Role       string    `json:"role" gorm:"type:varchar(20);default:customer" validate:"required,oneof=customer artisan"`
	IsVerified bool      `json:"is_verified"`
	Password   string    `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, sandbox only
	CreatedAt  time.Time `json:"-"`
}

// ProfileUpdate is the partial body accepted by PATCH /profile.
type ProfileUpdate struct {
	FullName *string `json:"full_name,omitempty"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}

// Apply copies the set fields onto u.
func (p ProfileUpdate) Apply(u *User) {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
}

// Empty reports whether no field is set.
func (p ProfileUpdate) Empty() bool {
	return p.FullName == nil && p.Address == nil && p.Phone == nil
}

// Registration is the body of POST /auth/register.
type Registration struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2"`
	Address  string `json:"address" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
}

// Credentials is the body of POST /auth/login.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by a successful login.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// MessageResponse is the generic {"message": "..."} body.
type MessageResponse struct {
	Message string `json:"message"`
}
