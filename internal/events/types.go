package events

import "time"

// InquirySubmittedV1 is emitted once an inquiry row has been written.
type InquirySubmittedV1 struct {
	InquiryID        string    `json:"inquiry_id"`
	Type             string    `json:"type"`
	FullName         string    `json:"full_name"`
	Email            string    `json:"email"`
	PhoneCountryCode string    `json:"phone_country_code,omitempty"`
	Phone            string    `json:"phone"`
	GuestCount       int       `json:"guest_count"`
	Intent           string    `json:"intent,omitempty"`
	Resorts          []string  `json:"resorts,omitempty"`
	CheckIn          string    `json:"check_in"`
	CheckOut         string    `json:"check_out"`
	MealPlan         string    `json:"meal_plan,omitempty"`
	Budget           string    `json:"budget,omitempty"`
	BudgetType       string    `json:"budget_type,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

const TypeInquirySubmittedV1 = "inquiry.submitted.v1"

func (InquirySubmittedV1) EventType() string { return TypeInquirySubmittedV1 }
