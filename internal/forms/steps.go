package forms

import "fmt"

// Step is one tab of the product form.
type Step int

const (
	StepBasic Step = iota
	StepDetails
	StepImages
	StepInventory
	StepShipping
)

// StepOrder is the fixed tab sequence.
var StepOrder = []Step{StepBasic, StepDetails, StepImages, StepInventory, StepShipping}

var stepNames = map[Step]string{
	StepBasic:     "basic",
	StepDetails:   "details",
	StepImages:    "images",
	StepInventory: "inventory",
	StepShipping:  "shipping",
}

// stepFields lists which draft fields each tab edits.
var stepFields = map[Step][]string{
	StepBasic:     {FieldName, FieldDescription, FieldPrice, FieldCompareAtPrice, FieldCategory, FieldSubcategory, FieldTags},
	StepDetails:   {FieldWeight, FieldWeightUnit, FieldLength, FieldWidth, FieldHeight, FieldDimensionUnit, FieldAvailableFrom, FieldAvailableUntil},
	StepImages:    {},
	StepInventory: {FieldSKU, FieldBarcode, FieldQuantity, FieldQuantityUnit, FieldOrderSize, FieldTrackInventory},
	StepShipping:  {FieldRequiresShipping, FieldFreeShipping, FieldSEOTitle, FieldSEODescription, FieldTermsAccepted},
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Fields returns the draft fields edited on this step.
func (s Step) Fields() []string {
	return append([]string(nil), stepFields[s]...)
}

// ParseStep maps a tab name to its Step.
func ParseStep(name string) (Step, error) {
	for step, n := range stepNames {
		if n == name {
			return step, nil
		}
	}
	return StepBasic, fmt.Errorf("unknown step %q", name)
}

// Stepper tracks the current tab. It moves one step at a time and clamps at
// both ends.
type Stepper struct {
	current Step
}

// Current returns the active step.
func (s *Stepper) Current() Step { return s.current }

// Next advances one step unless already on the last one.
func (s *Stepper) Next() Step {
	if s.current < StepOrder[len(StepOrder)-1] {
		s.current++
	}
	return s.current
}

// Prev goes back one step unless already on the first one.
func (s *Stepper) Prev() Step {
	if s.current > StepOrder[0] {
		s.current--
	}
	return s.current
}

// GoTo selects a tab directly.
func (s *Stepper) GoTo(step Step) error {
	if _, ok := stepNames[step]; !ok {
		return fmt.Errorf("unknown step %d", int(step))
	}
	s.current = step
	return nil
}
