package forms

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"artisanmart/internal/models"
)

// Product draft field names, as used by SetField and in ValidationErrors.
const (
	FieldName             = "name"
	FieldDescription      = "description"
	FieldPrice            = "price"
	FieldCompareAtPrice   = "compare_at_price"
	FieldCategory         = "category"
	FieldSubcategory      = "subcategory"
	FieldTags             = "tags"
	FieldSKU              = "sku"
	FieldBarcode          = "barcode"
	FieldQuantity         = "quantity"
	FieldQuantityUnit     = "quantity_unit"
	FieldOrderSize        = "order_size"
	FieldTrackInventory   = "track_inventory"
	FieldWeight           = "weight"
	FieldWeightUnit       = "weight_unit"
	FieldLength           = "length"
	FieldWidth            = "width"
	FieldHeight           = "height"
	FieldDimensionUnit    = "dimension_unit"
	FieldRequiresShipping = "requires_shipping"
	FieldFreeShipping     = "is_free_shipping"
	FieldAvailableFrom    = "available_from"
	FieldAvailableUntil   = "available_until"
	FieldSEOTitle         = "seo_title"
	FieldSEODescription   = "seo_description"
	FieldTermsAccepted    = "terms_accepted"
)

// DateLayout is the format of availability dates.
const DateLayout = "2006-01-02"

// ProductDraft is the raw, unsaved input of a product being composed.
// Numeric and date fields hold exactly what the user typed; Parse turns the
// draft into a typed ProductInput.
type ProductDraft struct {
	Name           string
	Description    string
	Price          string
	CompareAtPrice string
	Category       string
	Subcategory    string
	Tags           Tags
	SKU            string
	Barcode        string
	Quantity       string
	QuantityUnit   string
	OrderSize      string
	TrackInventory bool
	Weight         string
	WeightUnit     string
	Length         string
	Width          string
	Height         string
	DimensionUnit  string
	RequiresShip   bool
	FreeShipping   bool
	AvailableFrom  string
	AvailableUntil string
	SEOTitle       string
	SEODescription string
	TermsAccepted  bool
}

// NewProductDraft returns an empty draft with the form's default selections.
func NewProductDraft() ProductDraft {
	return ProductDraft{
		QuantityUnit:   "Piece",
		TrackInventory: true,
		WeightUnit:     "g",
		DimensionUnit:  "cm",
		RequiresShip:   true,
	}
}

// Set assigns one field from its textual input.
func (d *ProductDraft) Set(field, value string) error {
	switch field {
	case FieldName:
		d.Name = value
	case FieldDescription:
		d.Description = value
	case FieldPrice:
		d.Price = value
	case FieldCompareAtPrice:
		d.CompareAtPrice = value
	case FieldCategory:
		d.Category = value
	case FieldSubcategory:
		d.Subcategory = value
	case FieldSKU:
		d.SKU = value
	case FieldBarcode:
		d.Barcode = value
	case FieldQuantity:
		d.Quantity = value
	case FieldQuantityUnit:
		d.QuantityUnit = value
	case FieldOrderSize:
		d.OrderSize = value
	case FieldWeight:
		d.Weight = value
	case FieldWeightUnit:
		d.WeightUnit = value
	case FieldLength:
		d.Length = value
	case FieldWidth:
		d.Width = value
	case FieldHeight:
		d.Height = value
	case FieldDimensionUnit:
		d.DimensionUnit = value
	case FieldAvailableFrom:
		d.AvailableFrom = value
	case FieldAvailableUntil:
		d.AvailableUntil = value
	case FieldSEOTitle:
		d.SEOTitle = value
	case FieldSEODescription:
		d.SEODescription = value
	case FieldTrackInventory, FieldRequiresShipping, FieldFreeShipping, FieldTermsAccepted:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("field %s expects true or false, got %q", field, value)
		}
		d.setBool(field, b)
	case FieldTags:
		return fmt.Errorf("tags are edited with AddTag and RemoveTag")
	default:
		return fmt.Errorf("unknown product field %q", field)
	}
	return nil
}

func (d *ProductDraft) setBool(field string, b bool) {
	switch field {
	case FieldTrackInventory:
		d.TrackInventory = b
	case FieldRequiresShipping:
		d.RequiresShip = b
	case FieldFreeShipping:
		d.FreeShipping = b
	case FieldTermsAccepted:
		d.TermsAccepted = b
	}
}

// ProductInput is a fully parsed and validated draft.
type ProductInput struct {
	Name           string     `form:"name" validate:"min=3,max=100"`
	Description    string     `form:"description" validate:"min=20,max=2000"`
	Price          float64    `form:"price" validate:"gt=0"`
	CompareAtPrice *float64   `form:"compare_at_price" validate:"omitempty,gt=0"`
	Category       string     `form:"category" validate:"required,product_category"`
	Subcategory    string     `form:"subcategory" validate:"max=100"`
	Tags           []string   `form:"tags" validate:"dive,required,max=50"`
	SKU            string     `form:"sku" validate:"max=64"`
	Barcode        string     `form:"barcode" validate:"max=64"`
	Quantity       int        `form:"quantity" validate:"gte=0"`
	QuantityUnit   string     `form:"quantity_unit" validate:"required,quantity_unit"`
	OrderSize      string     `form:"order_size" validate:"max=50"`
	TrackInventory bool       `form:"track_inventory"`
	Weight         *float64   `form:"weight" validate:"omitempty,gt=0"`
	WeightUnit     string     `form:"weight_unit" validate:"oneof=kg g lb oz"`
	Length         *float64   `form:"length" validate:"omitempty,gt=0"`
	Width          *float64   `form:"width" validate:"omitempty,gt=0"`
	Height         *float64   `form:"height" validate:"omitempty,gt=0"`
	DimensionUnit  string     `form:"dimension_unit" validate:"oneof=cm m in ft"`
	RequiresShip   bool       `form:"requires_shipping"`
	FreeShipping   bool       `form:"is_free_shipping"`
	AvailableFrom  *time.Time `form:"available_from"`
	AvailableUntil *time.Time `form:"available_until"`
	SEOTitle       string     `form:"seo_title" validate:"max=60"`
	SEODescription string     `form:"seo_description" validate:"max=160"`
	TermsAccepted  bool       `form:"terms_accepted" validate:"eq=true"`
}

var productMessages = map[string]string{
	FieldName + ".min":               "Product name must be at least 3 characters.",
	FieldName + ".max":               "Product name must not exceed 100 characters.",
	FieldDescription + ".min":        "Description must be at least 20 characters.",
	FieldDescription + ".max":        "Description must not exceed 2000 characters.",
	FieldPrice:                       "Price must be a positive number.",
	FieldCompareAtPrice:              "Compare at price must be a positive number.",
	FieldCategory + ".required":      "Please select a category.",
	FieldCategory:                    "Please select a category from the list.",
	FieldSubcategory:                 "Subcategory must not exceed 100 characters.",
	FieldSKU:                         "SKU must not exceed 64 characters.",
	FieldBarcode:                     "Barcode must not exceed 64 characters.",
	FieldQuantity:                    "Quantity must be a non-negative integer.",
	FieldQuantityUnit:                "Please select a quantity unit from the list.",
	FieldOrderSize:                   "Minimum order size must not exceed 50 characters.",
	FieldWeight:                      "Weight must be a positive number.",
	FieldWeightUnit:                  "Weight unit must be one of kg, g, lb or oz.",
	FieldLength:                      "Length must be a positive number.",
	FieldWidth:                       "Width must be a positive number.",
	FieldHeight:                      "Height must be a positive number.",
	FieldDimensionUnit:               "Dimension unit must be one of cm, m, in or ft.",
	FieldSEOTitle:                    "SEO title must not exceed 60 characters.",
	FieldSEODescription:              "SEO description must not exceed 160 characters.",
	FieldTermsAccepted:               "You must accept the terms and conditions.",
}

// Parse converts the draft into a ProductInput. On failure it returns
// ValidationErrors holding one message per offending field.
func (d ProductDraft) Parse() (ProductInput, error) {
	errs := ValidationErrors{}
	in := ProductInput{
		Name:           strings.TrimSpace(d.Name),
		Description:    strings.TrimSpace(d.Description),
		Category:       strings.TrimSpace(d.Category),
		Subcategory:    strings.TrimSpace(d.Subcategory),
		Tags:           d.Tags.List(),
		SKU:            strings.TrimSpace(d.SKU),
		Barcode:        strings.TrimSpace(d.Barcode),
		QuantityUnit:   d.QuantityUnit,
		OrderSize:      strings.TrimSpace(d.OrderSize),
		TrackInventory: d.TrackInventory,
		WeightUnit:     d.WeightUnit,
		DimensionUnit:  d.DimensionUnit,
		RequiresShip:   d.RequiresShip,
		FreeShipping:   d.FreeShipping,
		SEOTitle:       strings.TrimSpace(d.SEOTitle),
		SEODescription: strings.TrimSpace(d.SEODescription),
		TermsAccepted:  d.TermsAccepted,
	}

	if v, ok := parseNumber(d.Price); ok {
		in.Price = v
	} else if strings.TrimSpace(d.Price) != "" {
		errs[FieldPrice] = productMessages[FieldPrice]
	}
	in.CompareAtPrice = optionalNumber(d.CompareAtPrice, FieldCompareAtPrice, errs)
	in.Weight = optionalNumber(d.Weight, FieldWeight, errs)
	in.Length = optionalNumber(d.Length, FieldLength, errs)
	in.Width = optionalNumber(d.Width, FieldWidth, errs)
	in.Height = optionalNumber(d.Height, FieldHeight, errs)

	switch q := strings.TrimSpace(d.Quantity); {
	case q == "":
		errs[FieldQuantity] = "Quantity is required."
	default:
		n, err := strconv.Atoi(q)
		if err != nil {
			errs[FieldQuantity] = productMessages[FieldQuantity]
		}
		in.Quantity = n
	}

	in.AvailableFrom = optionalDate(d.AvailableFrom, FieldAvailableFrom, errs)
	in.AvailableUntil = optionalDate(d.AvailableUntil, FieldAvailableUntil, errs)
	if in.AvailableFrom != nil && in.AvailableUntil != nil && in.AvailableUntil.Before(*in.AvailableFrom) {
		errs[FieldAvailableUntil] = "Available until must not be before available from."
	}

	check(in, errs, productMessages)
	return in, errs.orNil()
}

// Create builds the API body for in with the uploaded media URLs.
func (in ProductInput) Create(pictures, videos []string) models.ProductCreate {
	if pictures == nil {
		pictures = []string{}
	}
	if videos == nil {
		videos = []string{}
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	return models.ProductCreate{
		Name:           in.Name,
		Pictures:       pictures,
		Videos:         videos,
		Category:       in.Category,
		Subcategory:    in.Subcategory,
		Description:    in.Description,
		Tags:           tags,
		OrderSize:      in.OrderSize,
		OrderQuantity:  in.Quantity,
		QuantityUnit:   in.QuantityUnit,
		Price:          in.Price,
		CompareAtPrice: in.CompareAtPrice,
		SKU:            in.SKU,
		Barcode:        in.Barcode,
		TrackInventory: in.TrackInventory,
		Weight:         in.Weight,
		WeightUnit:     in.WeightUnit,
		Length:         in.Length,
		Width:          in.Width,
		Height:         in.Height,
		DimensionUnit:  in.DimensionUnit,
		RequiresShip:   in.RequiresShip,
		FreeShipping:   in.FreeShipping,
		AvailableFrom:  in.AvailableFrom,
		AvailableUntil: in.AvailableUntil,
		SEOTitle:       in.SEOTitle,
		SEODescription: in.SEODescription,
	}
}

func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func optionalNumber(raw, field string, errs ValidationErrors) *float64 {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	v, ok := parseNumber(raw)
	if !ok {
		errs[field] = productMessages[field]
		return nil
	}
	return &v
}

func optionalDate(raw, field string, errs ValidationErrors) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		errs[field] = fmt.Sprintf("Date must be in %s format.", "YYYY-MM-DD")
		return nil
	}
	return &t
}
