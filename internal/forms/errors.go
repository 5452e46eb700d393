package forms

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationErrors maps a form field name to the message shown next to it.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, field := range v.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", field, v[field]))
	}
	return strings.Join(parts, "; ")
}

// Fields returns the failing field names in sorted order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// Only returns the subset of v for the given fields.
func (v ValidationErrors) Only(fields ...string) ValidationErrors {
	out := ValidationErrors{}
	for _, f := range fields {
		if msg, ok := v[f]; ok {
			out[f] = msg
		}
	}
	return out
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("product_category", func(fl validator.FieldLevel) bool {
		return contains(ProductCategories, fl.Field().String())
	})
	_ = v.RegisterValidation("quantity_unit", func(fl validator.FieldLevel) bool {
		return contains(QuantityUnits, fl.Field().String())
	})
	return v
}

// check runs the validator over s and merges its failures into errs, keeping
// any message errs already holds for a field. messages is keyed "field.tag"
// or "field".
func check(s interface{}, errs ValidationErrors, messages map[string]string) {
	err := validate.Struct(s)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_"] = err.Error()
		return
	}
	for _, e := range verrs {
		field := e.Field()
		if _, exists := errs[field]; exists {
			continue
		}
		if msg, ok := messages[field+"."+e.Tag()]; ok {
			errs[field] = msg
		} else if msg, ok := messages[field]; ok {
			errs[field] = msg
		} else {
			errs[field] = fmt.Sprintf("Field '%s' failed on the '%s' tag", field, e.Tag())
		}
	}
}
