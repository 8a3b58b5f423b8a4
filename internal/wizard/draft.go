package wizard

import (
	"github.com/wolfman30/maldives-travel-platform/internal/calendar"
)

const (
	MaxTags       = 3
	MaxResorts    = 3
	MinGuests     = 1
	MaxGuests     = 20
	DefaultGuests = 2
)

// Contact holds the final step's contact and logistics inputs.
type Contact struct {
	FullName         string `json:"fullName"`
	PhoneCountryCode string `json:"phoneCountryCode"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	GuestCount       int    `json:"guestCount"`
	MealPlanChoice   string `json:"mealPlanChoice"`
	Budget           string `json:"budget"`
	BudgetType       string `json:"budgetType"`
	Notes            string `json:"notes"`
}

// Draft is the whole in-progress form. It is always persisted as one blob.
type Draft struct {
	CurrentStep       int               `json:"currentStep"`
	HighestStep       int               `json:"highestStep"`
	Intent            string            `json:"intent"`
	SelectedTags      []string          `json:"selectedTags"`
	PreferenceToggles map[string]string `json:"preferenceToggles"`
	SelectedEntities  []string          `json:"selectedEntities"`
	DateRange         calendar.Range    `json:"dateRange"`
	Contact           Contact           `json:"contact"`
}

// NewDraft returns the empty draft a fresh wizard starts from.
func NewDraft() Draft {
	return Draft{
		CurrentStep:       1,
		HighestStep:       1,
		SelectedTags:      []string{},
		PreferenceToggles: map[string]string{},
		SelectedEntities:  []string{},
		Contact: Contact{
			PhoneCountryCode: DefaultPhoneCountryCode,
			GuestCount:       DefaultGuests,
		},
	}
}

// normalize re-establishes the draft invariants for a flow with total steps.
// Rehydrated blobs may come from an older release or be hand-edited, so
// nothing read from a slot is trusted.
func (d *Draft) normalize(total int) {
	if d.HighestStep < 1 {
		d.HighestStep = 1
	}
	if d.HighestStep > total {
		d.HighestStep = total
	}
	if d.CurrentStep < 1 {
		d.CurrentStep = 1
	}
	if d.CurrentStep > d.HighestStep {
		d.CurrentStep = d.HighestStep
	}

	d.SelectedTags = uniqueCapped(d.SelectedTags, MaxTags)
	d.SelectedEntities = uniqueCapped(d.SelectedEntities, MaxResorts)

	if d.PreferenceToggles == nil {
		d.PreferenceToggles = map[string]string{}
	}
	for key, value := range d.PreferenceToggles {
		if !validPreference(key, value) {
			delete(d.PreferenceToggles, key)
		}
	}

	d.DateRange = calendar.Normalize(d.DateRange)
	d.Contact.GuestCount = clampGuests(d.Contact.GuestCount)
}

// clone returns a deep copy so callers can't mutate the wizard's draft.
func (d Draft) clone() Draft {
	d.SelectedTags = append([]string{}, d.SelectedTags...)
	d.SelectedEntities = append([]string{}, d.SelectedEntities...)
	prefs := make(map[string]string, len(d.PreferenceToggles))
	for k, v := range d.PreferenceToggles {
		prefs[k] = v
	}
	d.PreferenceToggles = prefs
	return d
}

func uniqueCapped(values []string, max int) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		if len(out) == max {
			break
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func clampGuests(n int) int {
	switch {
	case n < MinGuests:
		return MinGuests
	case n > MaxGuests:
		return MaxGuests
	default:
		return n
	}
}
