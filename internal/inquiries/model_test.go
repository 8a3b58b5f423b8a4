package inquiries

import (
	"errors"
	"testing"
	"time"

	"github.com/wolfman30/maldives-travel-platform/internal/calendar"
)

func validRequest() *CreateInquiryRequest {
	return &CreateInquiryRequest{
		Type:             TypeTripPlan,
		FullName:         "Amelia Hart",
		Email:            "amelia@example.com",
		PhoneCountryCode: "+44",
		Phone:            "7700900123",
		GuestCount:       2,
		Intent:           "Honeymoon",
		Experiences:      []string{"Spa", "Diving"},
		Preferences:      map[string]string{"islandSize": "Small Island"},
		Resorts:          []string{"Soneva Fushi"},
		CheckIn:          calendar.MustParseDate("2026-03-10"),
		CheckOut:         calendar.MustParseDate("2026-03-17"),
		Source:           "plan_wizard",
	}
}

func TestCreateInquiryRequest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *CreateInquiryRequest)
		want   error
	}{
		{"valid", func(r *CreateInquiryRequest) {}, nil},
		{"bad type", func(r *CreateInquiryRequest) { r.Type = "booking" }, ErrInvalidType},
		{"blank name", func(r *CreateInquiryRequest) { r.FullName = "  " }, ErrInvalidName},
		{"no email", func(r *CreateInquiryRequest) { r.Email = "" }, ErrMissingContact},
		{"no phone", func(r *CreateInquiryRequest) { r.Phone = "" }, ErrMissingContact},
		{"zero guests", func(r *CreateInquiryRequest) { r.GuestCount = 0 }, ErrInvalidGuestCount},
		{"too many guests", func(r *CreateInquiryRequest) { r.GuestCount = 21 }, ErrInvalidGuestCount},
		{"no check-out", func(r *CreateInquiryRequest) { r.CheckOut = calendar.Date{} }, ErrInvalidDates},
		{"reversed", func(r *CreateInquiryRequest) { r.CheckOut = calendar.MustParseDate("2026-03-01") }, ErrInvalidDates},
		{"same day", func(r *CreateInquiryRequest) { r.CheckOut = r.CheckIn }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			if err := req.Validate(); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestInquiry_Nights(t *testing.T) {
	inq := validRequest().inquiry("id", time.Now())
	if inq.Nights() != 7 {
		t.Fatalf("expected 7 nights, got %d", inq.Nights())
	}
}
