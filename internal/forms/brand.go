package forms

import (
	"strings"

	"artisanmart/internal/models"
)

// BrandForm is the brand create/edit form. Logo is optional.
type BrandForm struct {
	Name        string `form:"brand_name" validate:"required,min=2"`
	Description string `form:"brand_description" validate:"required,min=10"`
	Logo        File   `form:"logo" validate:"-"`
}

var brandMessages = map[string]string{
	"brand_name":        "Brand name must be at least 2 characters",
	"brand_description": "Description must be at least 10 characters",
}

// Validate checks the text fields and the logo file. The returned body has an
// empty Logo; the caller fills it after uploading.
func (f BrandForm) Validate() (models.BrandInput, error) {
	f.Name = strings.TrimSpace(f.Name)
	f.Description = strings.TrimSpace(f.Description)

	errs := ValidationErrors{}
	check(f, errs, brandMessages)
	if f.Logo != nil {
		if r := CheckFile(KindImage, f.Logo); r != nil {
			errs["logo"] = r.Reason
		}
	}
	if err := errs.orNil(); err != nil {
		return models.BrandInput{}, err
	}
	return models.BrandInput{Name: f.Name, Description: f.Description}, nil
}
