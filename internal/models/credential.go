package models

import "time"

// Keys under which the persisted session pair is stored.
const (
	CredentialKeyToken = "token"
	CredentialKeyUser  = "user"
)

// Credential is one persisted key/value entry of the local session store.
type Credential struct {
	Key       string `gorm:"primaryKey;type:varchar(32)"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// VerificationToken backs email verification and password reset links in
// the sandbox API.
type VerificationToken struct {
	Token     string `gorm:"primaryKey;type:varchar(36)"`
	UserID    uint   `gorm:"index"`
	Purpose   string `gorm:"type:varchar(20)"`
	ExpiresAt time.Time
}

// Token purposes.
const (
	PurposeVerifyEmail   = "verify_email"
	PurposeResetPassword = "reset_password"
)
