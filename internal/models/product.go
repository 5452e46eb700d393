package models

import "time"

// Product is a listing as returned by the product endpoints.
type Product struct {
	ID             uint       `json:"product_id" gorm:"primaryKey"`
	UserID         uint       `json:"user_id,omitempty" gorm:"index"`
	Name           string     `json:"product_name" gorm:"type:varchar(100)"`
	Pictures       []string   `json:"product_pic" gorm:"serializer:json"`
	Videos         []string   `json:"product_video" gorm:"serializer:json"`
	Category       string     `json:"category" gorm:"type:varchar(100)"`
	Subcategory    string     `json:"subcategory,omitempty"`
	Description    string     `json:"description"`
	Tags           []string   `json:"tags,omitempty" gorm:"serializer:json"`
	OrderSize      string     `json:"order_size,omitempty"`
	OrderQuantity  int        `json:"order_quantity"`
	QuantityUnit   string     `json:"quantity_unit,omitempty"`
	Price          float64    `json:"price"`
	CompareAtPrice *float64   `json:"compare_at_price,omitempty"`
	SKU            string     `json:"sku,omitempty"`
	Barcode        string     `json:"barcode,omitempty"`
	TrackInventory bool       `json:"track_inventory"`
	Weight         *float64   `json:"weight,omitempty"`
	WeightUnit     string     `json:"weight_unit,omitempty"`
	Length         *float64   `json:"length,omitempty"`
	Width          *float64   `json:"width,omitempty"`
	Height         *float64   `json:"height,omitempty"`
	DimensionUnit  string     `json:"dimension_unit,omitempty"`
	RequiresShip   bool       `json:"requires_shipping"`
	FreeShipping   bool       `json:"is_free_shipping"`
	AvailableFrom  *time.Time `json:"available_from,omitempty"`
	AvailableUntil *time.Time `json:"available_until,omitempty"`
	SEOTitle       string     `json:"seo_title,omitempty"`
	SEODescription string     `json:"seo_description,omitempty"`
	Rating         *float64   `json:"rating"`
	Approved       bool       `json:"approved"`
	CreatedAt      time.Time  `json:"-"`
}

// ProductCreate is the body of POST /products. Picture and video lists are
// always sent, even when empty.
type ProductCreate struct {
	Name           string     `json:"product_name" validate:"required,min=3,max=100"`
	Pictures       []string   `json:"product_pic"`
	Videos         []string   `json:"product_video"`
	Category       string     `json:"category" validate:"required"`
	Subcategory    string     `json:"subcategory,omitempty"`
	Description    string     `json:"description" validate:"required"`
	Tags           []string   `json:"tags"`
	OrderSize      string     `json:"order_size,omitempty"`
	OrderQuantity  int        `json:"order_quantity" validate:"gte=0"`
	QuantityUnit   string     `json:"quantity_unit,omitempty"`
	Price          float64    `json:"price" validate:"gt=0"`
	CompareAtPrice *float64   `json:"compare_at_price,omitempty"`
	SKU            string     `json:"sku,omitempty"`
	Barcode        string     `json:"barcode,omitempty"`
	TrackInventory bool       `json:"track_inventory"`
	Weight         *float64   `json:"weight,omitempty"`
	WeightUnit     string     `json:"weight_unit,omitempty"`
	Length         *float64   `json:"length,omitempty"`
	Width          *float64   `json:"width,omitempty"`
	Height         *float64   `json:"height,omitempty"`
	DimensionUnit  string     `json:"dimension_unit,omitempty"`
	RequiresShip   bool       `json:"requires_shipping"`
	FreeShipping   bool       `json:"is_free_shipping"`
	AvailableFrom  *time.Time `json:"available_from,omitempty"`
	AvailableUntil *time.Time `json:"available_until,omitempty"`
	SEOTitle       string     `json:"seo_title,omitempty"`
	SEODescription string     `json:"seo_description,omitempty"`
}

// Product converts the create body into a stored listing owned by userID.
func (p ProductCreate) Product(userID uint) Product {
	return Product{
		UserID:         userID,
		Name:           p.Name,
		Pictures:       nonNil(p.Pictures),
		Videos:         nonNil(p.Videos),
		Category:       p.Category,
		Subcategory:    p.Subcategory,
		Description:    p.Description,
		Tags:           nonNil(p.Tags),
		OrderSize:      p.OrderSize,
		OrderQuantity:  p.OrderQuantity,
		QuantityUnit:   p.QuantityUnit,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		SKU:            p.SKU,
		Barcode:        p.Barcode,
		TrackInventory: p.TrackInventory,
		Weight:         p.Weight,
		WeightUnit:     p.WeightUnit,
		Length:         p.Length,
		Width:          p.Width,
		Height:         p.Height,
		DimensionUnit:  p.DimensionUnit,
		RequiresShip:   p.RequiresShip,
		FreeShipping:   p.FreeShipping,
		AvailableFrom:  p.AvailableFrom,
		AvailableUntil: p.AvailableUntil,
		SEOTitle:       p.SEOTitle,
		SEODescription: p.SEODescription,
	}
}

// UploadResponse is returned by POST /upload.
type UploadResponse struct {
	URLs []string `json:"urls"`
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
