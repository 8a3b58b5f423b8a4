package inquiries

import (
	"strings"
	"time"

	"github.com/wolfman30/maldives-travel-platform/internal/calendar"
)

// Type discriminates the wizard an inquiry came from.
type Type string

const (
	TypeTripPlan    Type = "trip_plan"
	TypeResortQuote Type = "resort_quote"
)

// Valid reports whether t is a known inquiry type.
func (t Type) Valid() bool {
	return t == TypeTripPlan || t == TypeResortQuote
}

const (
	MinGuests = 1
	MaxGuests = 20
)

// Inquiry is one submitted wizard, flattened.
type Inquiry struct {
	ID               string            `json:"id"`
	Type             Type              `json:"type"`
	FullName         string            `json:"full_name"`
	Email            string            `json:"email"`
	PhoneCountryCode string            `json:"phone_country_code"`
	Phone            string            `json:"phone"`
	GuestCount       int               `json:"guest_count"`
	MealPlan         string            `json:"meal_plan"`
	Budget           string            `json:"budget"`
	BudgetType       string            `json:"budget_type"`
	Notes            string            `json:"notes"`
	Intent           string            `json:"intent"`
	Experiences      []string          `json:"experiences"`
	Preferences      map[string]string `json:"preferences"`
	Resorts          []string          `json:"resorts"`
	CheckIn          calendar.Date     `json:"check_in"`
	CheckOut         calendar.Date     `json:"check_out"`
	Source           string            `json:"source"`
	CreatedAt        time.Time         `json:"created_at"`
}

// Nights returns the length of the requested stay.
func (i *Inquiry) Nights() int {
	return calendar.Range{CheckIn: i.CheckIn, CheckOut: i.CheckOut}.Nights()
}

// CreateInquiryRequest is the write accepted by a Repository.
type CreateInquiryRequest struct {
	Type             Type              `json:"type"`
	FullName         string            `json:"full_name"`
	Email            string            `json:"email"`
	PhoneCountryCode string            `json:"phone_country_code"`
	Phone            string            `json:"phone"`
	GuestCount       int               `json:"guest_count"`
	MealPlan         string            `json:"meal_plan"`
	Budget           string            `json:"budget"`
	BudgetType       string            `json:"budget_type"`
	Notes            string            `json:"notes"`
	Intent           string            `json:"intent"`
	Experiences      []string          `json:"experiences"`
	Preferences      map[string]string `json:"preferences"`
	Resorts          []string          `json:"resorts"`
	CheckIn          calendar.Date     `json:"check_in"`
	CheckOut         calendar.Date     `json:"check_out"`
	Source           string            `json:"source"`
}

// Validate validates the create inquiry request
func (r *CreateInquiryRequest) Validate() error {
	if !r.Type.Valid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(r.FullName) == "" {
		return ErrInvalidName
	}
	if strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Phone) == "" {
		return ErrMissingContact
	}
	if r.GuestCount < MinGuests || r.GuestCount > MaxGuests {
		return ErrInvalidGuestCount
	}
	if r.CheckIn.IsZero() || r.CheckOut.IsZero() || r.CheckOut.Before(r.CheckIn) {
		return ErrInvalidDates
	}
	return nil
}

// inquiry builds the stored record, normalising nil collections so JSON
// responses carry [] and {} rather than null.
func (r *CreateInquiryRequest) inquiry(id string, createdAt time.Time) *Inquiry {
	inq := &Inquiry{
		ID:               id,
		Type:             r.Type,
		FullName:         strings.TrimSpace(r.FullName),
		Email:            strings.TrimSpace(r.Email),
		PhoneCountryCode: r.PhoneCountryCode,
		Phone:            strings.TrimSpace(r.Phone),
		GuestCount:       r.GuestCount,
		MealPlan:         r.MealPlan,
		Budget:           r.Budget,
		BudgetType:       r.BudgetType,
		Notes:            r.Notes,
		Intent:           r.Intent,
		Experiences:      append([]string{}, r.Experiences...),
		Preferences:      make(map[string]string, len(r.Preferences)),
		Resorts:          append([]string{}, r.Resorts...),
		CheckIn:          r.CheckIn,
		CheckOut:         r.CheckOut,
		Source:           r.Source,
		CreatedAt:        createdAt,
	}
	for k, v := range r.Preferences {
		inq.Preferences[k] = v
	}
	return inq
}

// ListFilter narrows an admin listing.
type ListFilter struct {
	Type   Type
	Limit  int
	Offset int
}
