package forms

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyTag is returned when a tag is blank after trimming.
	ErrEmptyTag = errors.New("tag must not be empty")
	// ErrDuplicateTag is returned when the tag is already present.
	ErrDuplicateTag = errors.New("tag already added")
)

// Tags is an insertion-ordered set of product tags. Comparison is exact and
// case-sensitive.
type Tags struct {
	items []string
}

// Add trims raw and appends it. It returns the stored tag.
func (t *Tags) Add(raw string) (string, error) {
	tag := strings.TrimSpace(raw)
	if tag == "" {
		return "", ErrEmptyTag
	}
	for _, existing := range t.items {
		if existing == tag {
			return tag, ErrDuplicateTag
		}
	}
	t.items = append(t.items, tag)
	return tag, nil
}

// Remove deletes the tag equal to tag and reports whether one was present.
func (t *Tags) Remove(tag string) bool {
	for i, existing := range t.items {
		if existing == tag {
			t.items = append(t.items[:i:i], t.items[i+1:]...)
			return true
		}
	}
	return false
}

// List returns a copy of the tags in insertion order.
func (t Tags) List() []string {
	return append([]string(nil), t.items...)
}

// Len returns the number of tags.
func (t Tags) Len() int {
	return len(t.items)
}
