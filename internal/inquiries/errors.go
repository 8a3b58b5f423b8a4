package inquiries

import "errors"

var (
	// ErrInvalidName is returned when the guest name is missing
	ErrInvalidName = errors.New("full name is required")

	// ErrMissingContact is returned when the email or phone is missing
	ErrMissingContact = errors.New("email and phone are required")

	// ErrInvalidType is returned for an unknown inquiry type
	ErrInvalidType = errors.New("inquiry type must be trip_plan or resort_quote")

	// ErrInvalidGuestCount is returned when the guest count is out of range
	ErrInvalidGuestCount = errors.New("guest count must be between 1 and 20")

	// ErrInvalidDates is returned when the stay dates are missing or reversed
	ErrInvalidDates = errors.New("check-in and check-out are required and check-out cannot precede check-in")

	// ErrInquiryNotFound is returned when an inquiry is not found
	ErrInquiryNotFound = errors.New("inquiry not found")
)
