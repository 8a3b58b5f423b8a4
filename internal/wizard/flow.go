package wizard

import (
	"fmt"

	"github.com/wolfman30/maldives-travel-platform/internal/inquiries"
)

// StepID names one step of a flow.
type StepID string

const (
	StepIntent      StepID = "intent"
	StepExperiences StepID = "experiences"
	StepPreferences StepID = "preferences"
	StepResorts     StepID = "resorts"
	StepDates       StepID = "dates"
	StepContact     StepID = "contact"
)

// Variant selects a flow.
type Variant string

const (
	VariantPlan  Variant = "plan"
	VariantQuote Variant = "quote"
)

// Flow is the ordered step list of one wizard variant and the inquiry type it
// produces.
type Flow struct {
	Variant Variant
	Type    inquiries.Type
	Source  string
	Steps   []StepID
}

// PlanTripFlow is the general "plan my trip" intake.
var PlanTripFlow = Flow{
	Variant: VariantPlan,
	Type:    inquiries.TypeTripPlan,
	Source:  "plan_wizard",
	Steps:   []StepID{StepIntent, StepExperiences, StepPreferences, StepResorts, StepDates, StepContact},
}

// ResortQuoteFlow is the quote request started from a resort page. The resort
// is fixed when the wizard opens.
var ResortQuoteFlow = Flow{
	Variant: VariantQuote,
	Type:    inquiries.TypeResortQuote,
	Source:  "quote_wizard",
	Steps:   []StepID{StepIntent, StepDates, StepContact},
}

// FlowFor resolves a variant name.
func FlowFor(variant string) (Flow, error) {
	switch Variant(variant) {
	case VariantPlan:
		return PlanTripFlow, nil
	case VariantQuote:
		return ResortQuoteFlow, nil
	default:
		return Flow{}, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
}

// Total is the number of steps.
func (f Flow) Total() int { return len(f.Steps) }

// Step returns the id of 1-indexed step n.
func (f Flow) Step(n int) StepID {
	if n < 1 || n > len(f.Steps) {
		return ""
	}
	return f.Steps[n-1]
}

// Has reports whether the flow includes step.
func (f Flow) Has(step StepID) bool {
	for _, s := range f.Steps {
		if s == step {
			return true
		}
	}
	return false
}
