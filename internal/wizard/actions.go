package wizard

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wolfman30/maldives-travel-platform/internal/calendar"
)

// Action is one guest interaction. apply mutates the wizard and reports
// whether anything changed. Guards that reject an action leave the draft
// untouched and return false.
type Action interface {
	apply(w *Wizard) bool
}

// SelectIntent picks the trip purpose. On the intent step it also advances.
type SelectIntent struct {
	Intent string `json:"intent"`
}

// ToggleTag adds or removes an experience tag.
type ToggleTag struct {
	Tag string `json:"tag"`
}

// SetPreference chooses one side of a binary preference.
type SetPreference struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// AddResort adds a catalog resort to the shortlist by display name.
type AddResort struct {
	Name string `json:"name"`
}

// RemoveResort drops a shortlisted resort by display name.
type RemoveResort struct {
	Name string `json:"name"`
}

// PickDate is one click on the calendar.
type PickDate struct {
	Date calendar.Date `json:"date"`
}

// UpdateContact applies the non-nil fields of Patch.
type UpdateContact struct {
	Patch ContactPatch `json:"contact"`
}

// Advance moves forward when the current step is complete.
type Advance struct{}

// Retreat moves back one step.
type Retreat struct{}

// GoToStep jumps to a step already reached.
type GoToStep struct {
	Step int `json:"step"`
}

// ContactPatch carries the contact fields a request changes.
type ContactPatch struct {
	FullName         *string     `json:"fullName,omitempty"`
	PhoneCountryCode *string     `json:"phoneCountryCode,omitempty"`
	Phone            *string     `json:"phone,omitempty"`
	Email            *string     `json:"email,omitempty"`
	GuestCount       *GuestInput `json:"guestCount,omitempty"`
	MealPlanChoice   *string     `json:"mealPlanChoice,omitempty"`
	Budget           *string     `json:"budget,omitempty"`
	BudgetType       *string     `json:"budgetType,omitempty"`
	Notes            *string     `json:"notes,omitempty"`
}

// GuestInput is a guest count as typed into a number field. It accepts JSON
// numbers and numeric strings; fractions are truncated. Input that is not a
// number leaves Valid false.
type GuestInput struct {
	Value int
	Valid bool
}

func (g *GuestInput) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*g = GuestInput{}
		return nil
	}
	if f > math.MaxInt32 {
		f = math.MaxInt32
	}
	if f < math.MinInt32 {
		f = math.MinInt32
	}
	*g = GuestInput{Value: int(f), Valid: true}
	return nil
}

// Guests returns a valid input of n.
func Guests(n int) *GuestInput {
	return &GuestInput{Value: n, Valid: true}
}

// Action type names used on the wire.
const (
	ActionSelectIntent  = "select_intent"
	ActionToggleTag     = "toggle_tag"
	ActionSetPreference = "set_preference"
	ActionAddResort     = "add_resort"
	ActionRemoveResort  = "remove_resort"
	ActionPickDate      = "pick_date"
	ActionUpdateContact = "update_contact"
	ActionAdvance       = "advance"
	ActionRetreat       = "retreat"
	ActionGoToStep      = "go_to_step"
)

// DecodeAction parses an action envelope such as
// {"type":"toggle_tag","tag":"Spa"}.
func DecodeAction(data []byte) (Action, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownAction, err)
	}

	var action Action
	switch head.Type {
	case ActionSelectIntent:
		action = &SelectIntent{}
	case ActionToggleTag:
		action = &ToggleTag{}
	case ActionSetPreference:
		action = &SetPreference{}
	case ActionAddResort:
		action = &AddResort{}
	case ActionRemoveResort:
		action = &RemoveResort{}
	case ActionPickDate:
		action = &PickDate{}
	case ActionUpdateContact:
		action = &UpdateContact{}
	case ActionAdvance:
		return Advance{}, nil
	case ActionRetreat:
		return Retreat{}, nil
	case ActionGoToStep:
		action = &GoToStep{}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, head.Type)
	}
	if err := json.Unmarshal(data, action); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnknownAction, head.Type, err)
	}
	return action, nil
}

func (a SelectIntent) apply(w *Wizard) bool  { return w.selectIntent(a.Intent) }
func (a ToggleTag) apply(w *Wizard) bool     { return w.toggleTag(a.Tag) }
func (a SetPreference) apply(w *Wizard) bool { return w.setPreference(a.Key, a.Value) }
func (a AddResort) apply(w *Wizard) bool     { return w.addResort(a.Name) }
func (a RemoveResort) apply(w *Wizard) bool  { return w.removeResort(a.Name) }
func (a PickDate) apply(w *Wizard) bool      { return w.pickDate(a.Date) }
func (a UpdateContact) apply(w *Wizard) bool { return w.updateContact(a.Patch) }
func (Advance) apply(w *Wizard) bool         { return w.advance() }
func (Retreat) apply(w *Wizard) bool         { return w.retreat() }
func (a GoToStep) apply(w *Wizard) bool      { return w.goToStep(a.Step) }
