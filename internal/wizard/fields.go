package wizard

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/wolfman30/maldives-travel-platform/internal/calendar"
)

func (w *Wizard) selectIntent(intent string) bool {
	intent = strings.TrimSpace(intent)
	if intent == "" || !w.flow.Has(StepIntent) {
		return false
	}
	changed := w.draft.Intent != intent
	w.draft.Intent = intent
	if w.CurrentStepID() == StepIntent {
		changed = w.advance() || changed
	}
	return changed
}

func (w *Wizard) toggleTag(tag string) bool {
	tag = strings.TrimSpace(tag)
	if !w.flow.Has(StepExperiences) || !isTag(tag) {
		return false
	}
	for i, t := range w.draft.SelectedTags {
		if t == tag {
			w.draft.SelectedTags = append(w.draft.SelectedTags[:i:i], w.draft.SelectedTags[i+1:]...)
			return true
		}
	}
	if len(w.draft.SelectedTags) >= MaxTags {
		return false
	}
	w.draft.SelectedTags = append(w.draft.SelectedTags, tag)
	return true
}

// ContinueLabel is the caption of the experiences step's continue button.
func (w *Wizard) ContinueLabel() string {
	n := len(w.draft.SelectedTags)
	if n == 0 {
		return "Continue without preference"
	}
	return fmt.Sprintf("Continue (%d/%d)", n, MaxTags)
}

func (w *Wizard) setPreference(key, value string) bool {
	if !w.flow.Has(StepPreferences) || !validPreference(key, value) {
		return false
	}
	if w.draft.PreferenceToggles[key] == value {
		return false
	}
	w.draft.PreferenceToggles[key] = value
	return true
}

func (w *Wizard) pickDate(d calendar.Date) bool {
	if !w.flow.Has(StepDates) {
		return false
	}
	picker := w.Picker()
	if !picker.Click(d) || picker.Selection() == w.draft.DateRange {
		return false
	}
	w.draft.DateRange = picker.Selection()
	return true
}

// Picker returns a calendar view of the selected range.
func (w *Wizard) Picker() *calendar.Picker {
	return calendar.NewPicker(w.draft.DateRange, w.today)
}

func (w *Wizard) updateContact(p ContactPatch) bool {
	before := w.draft.Contact
	c := &w.draft.Contact
	setString(&c.FullName, p.FullName)
	setString(&c.PhoneCountryCode, p.PhoneCountryCode)
	setString(&c.Phone, p.Phone)
	setString(&c.Email, p.Email)
	setString(&c.MealPlanChoice, p.MealPlanChoice)
	setString(&c.Budget, p.Budget)
	setString(&c.BudgetType, p.BudgetType)
	setString(&c.Notes, p.Notes)
	if p.GuestCount != nil && p.GuestCount.Valid {
		c.GuestCount = clampGuests(p.GuestCount.Value)
	}
	return *c != before
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// missingContact checks presence of the required contact fields, plus the
// shape an email input would enforce.
func missingContact(c Contact) []string {
	var missing []string
	if strings.TrimSpace(c.FullName) == "" {
		missing = append(missing, "contact.fullName")
	}
	if email := strings.TrimSpace(c.Email); email == "" {
		missing = append(missing, "contact.email")
	} else if _, err := mail.ParseAddress(email); err != nil {
		missing = append(missing, "contact.email")
	}
	if strings.TrimSpace(c.Phone) == "" {
		missing = append(missing, "contact.phone")
	}
	if c.GuestCount < MinGuests {
		missing = append(missing, "contact.guestCount")
	}
	return missing
}
