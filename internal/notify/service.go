package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/wolfman30/maldives-travel-platform/internal/calendar"
	"github.com/wolfman30/maldives-travel-platform/internal/events"
	"github.com/wolfman30/maldives-travel-platform/internal/observability/metrics"
	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

// Recipient labels for the email metric.
const (
	RecipientAgency = "agency"
	RecipientGuest  = "guest"
)

// Service e-mails the agency inbox and the guest when an inquiry arrives.
type Service struct {
	email       EmailSender
	agencyInbox string
	logger      *logging.Logger
	metrics     *metrics.NotificationMetrics
}

// NewService creates a notification service. An empty agencyInbox skips the
// agency copy; m may be nil.
func NewService(email EmailSender, agencyInbox string, logger *logging.Logger, m *metrics.NotificationMetrics) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:       email,
		agencyInbox: strings.TrimSpace(agencyInbox),
		logger:      logger,
		metrics:     m,
	}
}

// NotifyInquirySubmitted sends both messages. A failure of one does not stop
// the other; the returned error reports every failed send.
func (s *Service) NotifyInquirySubmitted(ctx context.Context, evt events.InquirySubmittedV1) error {
	if s.email == nil {
		s.logger.Debug("notify: email sender not configured, skipping", "inquiry_id", evt.InquiryID)
		return nil
	}

	var errs []error
	if s.agencyInbox != "" {
		if err := s.send(ctx, RecipientAgency, agencyMessage(s.agencyInbox, evt)); err != nil {
			errs = append(errs, err)
		}
	}
	if evt.Email != "" {
		if err := s.send(ctx, RecipientGuest, guestMessage(evt)); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("notify: %d notification(s) failed: %w", len(errs), errors.Join(errs...))
	}
	return nil
}

func (s *Service) send(ctx context.Context, recipient string, msg EmailMessage) error {
	if err := s.email.Send(ctx, msg); err != nil {
		s.metrics.ObserveEmail(recipient, "failed")
		s.logger.Error("notify: failed to send email", "error", err, "recipient", recipient, "to", msg.To)
		return err
	}
	s.metrics.ObserveEmail(recipient, "sent")
	s.logger.Info("notify: inquiry email sent", "recipient", recipient, "to", msg.To)
	return nil
}

func agencyMessage(inbox string, evt events.InquirySubmittedV1) EmailMessage {
	kind := "Trip plan"
	if evt.Type == "resort_quote" {
		kind = "Quote request"
	}
	subject := fmt.Sprintf("%s from %s", kind, evt.FullName)
	if len(evt.Resorts) > 0 {
		subject += " (" + strings.Join(evt.Resorts, ", ") + ")"
	}

	rows := summaryRows(evt)
	var text, table strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&text, "%s: %s\n", r[0], r[1])
		fmt.Fprintf(&table, `<tr><td style="padding: 6px 12px 6px 0;"><strong>%s</strong></td><td style="padding: 6px 0;">%s</td></tr>`,
			html.EscapeString(r[0]), html.EscapeString(r[1]))
	}
	fmt.Fprintf(&text, "\nInquiry ID: %s\n", evt.InquiryID)

	return EmailMessage{
		To:      inbox,
		ReplyTo: evt.Email,
		Subject: subject,
		Body:    text.String(),
		HTML: fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<h2>%s</h2>
<table style="border-collapse: collapse;">%s</table>
<p style="color: #6b7280; font-size: 12px;">Inquiry %s</p>
</div>`, html.EscapeString(subject), table.String(), html.EscapeString(evt.InquiryID)),
	}
}

func guestMessage(evt events.InquirySubmittedV1) EmailMessage {
	name := firstName(evt.FullName)
	when := stayLabel(evt.CheckIn, evt.CheckOut)
	body := fmt.Sprintf(`Dear %s,

Thank you for your inquiry. One of our Maldives specialists will be in touch within one working day%s.

Your stay: %s
Guests: %d
`, name, resortClause(evt.Resorts), when, evt.GuestCount)

	return EmailMessage{
		To:      evt.Email,
		ToName:  evt.FullName,
		Subject: "We've received your Maldives inquiry",
		Body:    body,
		HTML: fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px;">
<p>Dear %s,</p>
<p>Thank you for your inquiry. One of our Maldives specialists will be in touch within one working day%s.</p>
<p><strong>Your stay:</strong> %s<br><strong>Guests:</strong> %d</p>
</div>`, html.EscapeString(name), html.EscapeString(resortClause(evt.Resorts)), html.EscapeString(when), evt.GuestCount),
	}
}

func summaryRows(evt events.InquirySubmittedV1) [][2]string {
	phone := strings.TrimSpace(evt.PhoneCountryCode + " " + evt.Phone)
	rows := [][2]string{
		{"Name", evt.FullName},
		{"Email", evt.Email},
		{"Phone", phone},
		{"Guests", fmt.Sprint(evt.GuestCount)},
		{"Dates", stayLabel(evt.CheckIn, evt.CheckOut)},
	}
	optional := [][2]string{
		{"Occasion", evt.Intent},
		{"Resorts", strings.Join(evt.Resorts, ", ")},
		{"Meal plan", evt.MealPlan},
		{"Budget", strings.TrimSpace(evt.Budget + " " + evt.BudgetType)},
		{"Notes", evt.Notes},
	}
	for _, r := range optional {
		if r[1] != "" {
			rows = append(rows, r)
		}
	}
	return rows
}

// stayLabel renders "10 Mar 2026 to 15 Mar 2026 (5 nights)". Unparseable
// dates are shown as received.
func stayLabel(checkIn, checkOut string) string {
	in, errIn := calendar.ParseDate(checkIn)
	out, errOut := calendar.ParseDate(checkOut)
	if errIn != nil || errOut != nil || in.IsZero() || out.IsZero() {
		return strings.TrimSpace(checkIn + " to " + checkOut)
	}
	r := calendar.Range{CheckIn: in, CheckOut: out}
	nights := r.Nights()
	unit := "nights"
	if nights == 1 {
		unit = "night"
	}
	return fmt.Sprintf("%s to %s (%d %s)", longDate(in), longDate(out), nights, unit)
}

func longDate(d calendar.Date) string {
	return fmt.Sprintf("%d %s %d", d.Day, d.Month.String()[:3], d.Year)
}

func resortClause(resorts []string) string {
	if len(resorts) == 0 {
		return ""
	}
	return " about " + strings.Join(resorts, ", ")
}

func firstName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return "traveller"
	}
	return fields[0]
}
