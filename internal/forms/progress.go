package forms

import "strings"

// RequiredFields are the fields counted by Progress.
var RequiredFields = []string{FieldName, FieldDescription, FieldPrice, FieldCategory, FieldQuantity}

// Progress returns the completion percentage of d: 20 for an opened form plus
// up to 80 spread over RequiredFields. A field counts once it has input, and
// numeric fields only once that input is a non-zero number.
func Progress(d ProductDraft) int {
	completed := 0
	for _, field := range RequiredFields {
		if fieldCompleted(d, field) {
			completed++
		}
	}
	return 20 + (completed*80)/len(RequiredFields)
}

func fieldCompleted(d ProductDraft, field string) bool {
	switch field {
	case FieldName:
		return strings.TrimSpace(d.Name) != ""
	case FieldDescription:
		return strings.TrimSpace(d.Description) != ""
	case FieldCategory:
		return strings.TrimSpace(d.Category) != ""
	case FieldPrice:
		v, ok := parseNumber(d.Price)
		return ok && v != 0
	case FieldQuantity:
		v, ok := parseNumber(d.Quantity)
		return ok && v != 0
	}
	return false
}
