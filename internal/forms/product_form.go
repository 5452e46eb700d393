package forms

import (
	"errors"
	"sync"
)

// ProductForm is the controller behind one open product form: the draft,
// the current tab, staged media and the submission guard. All methods are
// safe for concurrent use.
type ProductForm struct {
	mu         sync.Mutex
	draft      ProductDraft
	steps      Stepper
	progress   int
	submitting bool
	disposed   bool

	images *MediaList
	videos *MediaList
}

// NewProductForm opens an empty form. previews may be shared between forms.
func NewProductForm(previews *PreviewRegistry) *ProductForm {
	if previews == nil {
		previews = NewPreviewRegistry()
	}
	f := &ProductForm{
		draft:  NewProductDraft(),
		images: NewMediaList(KindImage, previews),
		videos: NewMediaList(KindVideo, previews),
	}
	f.progress = Progress(f.draft)
	return f
}

// SetField updates one field, recomputes progress and returns the field's
// current validation message ("" when valid).
func (f *ProductForm) SetField(field, value string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.draft.Set(field, value); err != nil {
		return "", err
	}
	f.progress = Progress(f.draft)
	return fieldError(f.draft, field), nil
}

// FieldError returns the validation message for one field.
func (f *ProductForm) FieldError(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fieldError(f.draft, field)
}

func fieldError(d ProductDraft, field string) string {
	_, err := d.Parse()
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs[field]
	}
	return ""
}

// AddTag adds a tag to the draft.
func (f *ProductForm) AddTag(raw string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Tags.Add(raw)
}

// RemoveTag removes a tag by exact match.
func (f *ProductForm) RemoveTag(tag string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Tags.Remove(tag)
}

// Tags returns the draft's tags in order.
func (f *ProductForm) Tags() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Tags.List()
}

// Draft returns a copy of the current draft.
func (f *ProductForm) Draft() ProductDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.draft
	d.Tags = Tags{items: f.draft.Tags.List()}
	return d
}

// Progress returns the completion percentage.
func (f *ProductForm) Progress() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.progress
}

// Step returns the active tab.
func (f *ProductForm) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.steps.Current()
}

// Next and Prev move one tab, clamped at the ends.
func (f *ProductForm) Next() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.steps.Next()
}

func (f *ProductForm) Prev() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.steps.Prev()
}

// GoTo selects a tab directly.
func (f *ProductForm) GoTo(step Step) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.steps.GoTo(step)
}

// Validate parses the whole draft.
func (f *ProductForm) Validate() (ProductInput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Parse()
}

// StepErrors returns the validation messages of the fields on step.
func (f *ProductForm) StepErrors(step Step) ValidationErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := f.draft.Parse()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{}
	}
	return verrs.Only(step.Fields()...)
}

// Images and Videos return the staged media lists.
func (f *ProductForm) Images() *MediaList { return f.images }
func (f *ProductForm) Videos() *MediaList { return f.videos }

// BeginSubmit claims the form for a submission. It returns false while
// another submission is in flight or after the form was disposed.
func (f *ProductForm) BeginSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting || f.disposed {
		return false
	}
	f.submitting = true
	return true
}

// EndSubmit releases the submission claim.
func (f *ProductForm) EndSubmit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
}

// Submitting reports whether a submission is in flight.
func (f *ProductForm) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Reset empties the draft, releases all staged media and returns to the
// first tab.
func (f *ProductForm) Reset() {
	f.mu.Lock()
	f.draft = NewProductDraft()
	f.steps = Stepper{}
	f.progress = Progress(f.draft)
	f.mu.Unlock()

	f.images.Clear()
	f.videos.Clear()
}

// Dispose closes the form: previews are released and results of requests
// still in flight will be discarded.
func (f *ProductForm) Dispose() {
	f.mu.Lock()
	f.disposed = true
	f.mu.Unlock()

	f.images.Clear()
	f.videos.Clear()
}

// Disposed reports whether Dispose was called.
func (f *ProductForm) Disposed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.disposed
}
