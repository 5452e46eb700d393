package models

import "time"

// Brand is an artisan's storefront identity. Each user owns at most one.
type Brand struct {
	ID          uint      `json:"brand_id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex"`
	Name        string    `json:"brand_name" gorm:"type:varchar(100)"`
	Description string    `json:"brand_description"`
	Logo        string    `json:"logo"`
	CreatedAt   time.Time `json:"created_at"`
}

// BrandInput is the body of POST /brands and PATCH /brands/me.
type BrandInput struct {
	Name        string `json:"brand_name" validate:"required,min=2"`
	Description string `json:"brand_description" validate:"required,min=10"`
	Logo        string `json:"logo"`
}
