package wizard

import (
	"errors"
	"strings"
)

var (
	// ErrNotFinalStep is returned when submit is attempted before the last step.
	ErrNotFinalStep = errors.New("wizard: submission is only allowed from the final step")

	// ErrIncomplete is returned when required fields are missing at submission.
	ErrIncomplete = errors.New("wizard: form is incomplete")

	// ErrSubmissionInFlight is returned while a submission for the same draft is outstanding.
	ErrSubmissionInFlight = errors.New("wizard: submission already in progress")

	// ErrSubmitted is returned for any action after a successful submission.
	ErrSubmitted = errors.New("wizard: inquiry already submitted")

	// ErrNoDraftStore is returned when a wizard built without a draft store is submitted.
	ErrNoDraftStore = errors.New("wizard: wizard has no draft store")

	// ErrUnknownVariant is returned for an unrecognised wizard variant.
	ErrUnknownVariant = errors.New("wizard: unknown variant")

	// ErrUnknownAction is returned when an action envelope cannot be decoded.
	ErrUnknownAction = errors.New("wizard: unknown action")

	// ErrUnknownResort is returned when a quote wizard names a resort the catalog lacks.
	ErrUnknownResort = errors.New("wizard: unknown resort")
)

// IncompleteError lists the fields that block submission.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return ErrIncomplete.Error() + ": missing " + strings.Join(e.Missing, ", ")
}

func (e *IncompleteError) Unwrap() error { return ErrIncomplete }

// SubmissionError wraps a failed write to the inquiry store. Message is safe
// to show to the guest.
type SubmissionError struct {
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	return "wizard: submission failed: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error { return e.Err }
