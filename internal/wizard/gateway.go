package wizard

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/maldives-travel-platform/internal/events"
	"github.com/wolfman30/maldives-travel-platform/internal/inquiries"
	"github.com/wolfman30/maldives-travel-platform/internal/observability/metrics"
	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

// SubmitFailedMessage is shown to the guest when the inquiry store rejects a
// submission.
const SubmitFailedMessage = "We couldn't send your inquiry just now. Your answers are saved, please try again."

// EventPublisher announces stored inquiries.
type EventPublisher interface {
	PublishInquirySubmitted(ctx context.Context, evt events.InquirySubmittedV1) error
}

// Gateway hands completed wizards to the inquiry store. It guards each draft
// slot against concurrent submissions.
type Gateway struct {
	repo      inquiries.Repository
	publisher EventPublisher
	logger    *logging.Logger
	metrics   *metrics.WizardMetrics
	tracer    trace.Tracer
	now       func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewGateway creates a gateway. publisher and m may be nil.
func NewGateway(repo inquiries.Repository, publisher EventPublisher, logger *logging.Logger, m *metrics.WizardMetrics) *Gateway {
	if repo == nil {
		panic("wizard: inquiry repository cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Gateway{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		metrics:   m,
		tracer:    otel.Tracer("maldives.internal.wizard.gateway"),
		now:       time.Now,
		inFlight:  make(map[string]struct{}),
	}
}

// Submitting reports whether a submission for w's draft is outstanding.
func (g *Gateway) Submitting(w *Wizard) bool {
	if w.store == nil {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.inFlight[w.store.Key()]
	return busy
}

// Submit writes w as a new inquiry. On success the draft slot is cleared and
// w becomes terminal. On failure the draft is left in place, w.LastError is
// set, and a *SubmissionError is returned. A wizard whose slot was cleared by
// an earlier submission is refused with ErrSubmitted.
func (g *Gateway) Submit(ctx context.Context, w *Wizard) (*inquiries.Inquiry, error) {
	if w.submitted {
		return nil, ErrSubmitted
	}
	if w.store == nil {
		return nil, ErrNoDraftStore
	}
	if !w.IsFinalStep() {
		return nil, ErrNotFinalStep
	}
	if missing := w.Missing(); len(missing) > 0 {
		return nil, &IncompleteError{Missing: missing}
	}

	key := w.store.Key()
	if !g.acquire(key) {
		return nil, ErrSubmissionInFlight
	}
	defer g.release(key)

	exists, err := w.store.Exists(ctx)
	if err != nil {
		w.lastError = SubmitFailedMessage
		g.logger.Error("failed to check draft before submission", "error", err, "draft_key", key)
		return nil, &SubmissionError{Message: SubmitFailedMessage, Err: err}
	}
	if !exists {
		w.submitted = true
		g.logger.Warn("refusing submission of a cleared draft", "draft_key", key)
		return nil, ErrSubmitted
	}

	ctx, span := g.tracer.Start(ctx, "wizard.submit", trace.WithAttributes(
		attribute.String("wizard.variant", string(w.flow.Variant)),
	))
	defer span.End()

	variant := string(w.flow.Variant)
	start := g.now()

	inq, err := g.repo.Create(ctx, w.InquiryRequest())
	if err != nil {
		span.RecordError(err)
		w.lastError = SubmitFailedMessage
		g.metrics.ObserveSubmission(variant, "failed", g.now().Sub(start).Seconds())
		g.logger.Error("inquiry submission failed", "error", err, "variant", variant, "draft_key", key)
		return nil, &SubmissionError{Message: SubmitFailedMessage, Err: err}
	}

	w.submitted = true
	w.lastError = ""
	if err := w.store.Clear(ctx); err != nil {
		span.RecordError(err)
		g.logger.Warn("failed to clear submitted draft", "error", err, "draft_key", key, "inquiry_id", inq.ID)
	}
	g.metrics.ObserveSubmission(variant, "success", g.now().Sub(start).Seconds())
	g.logger.Info("inquiry submitted", "inquiry_id", inq.ID, "variant", variant, "resorts", len(inq.Resorts))

	if g.publisher != nil {
		if err := g.publisher.PublishInquirySubmitted(ctx, submittedEvent(inq)); err != nil {
			g.logger.Error("failed to publish inquiry event", "error", err, "inquiry_id", inq.ID)
		}
	}
	return inq, nil
}

func (g *Gateway) acquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inFlight[key]; busy {
		return false
	}
	g.inFlight[key] = struct{}{}
	return true
}

func (g *Gateway) release(key string) {
	g.mu.Lock()
	delete(g.inFlight, key)
	g.mu.Unlock()
}

// InquiryRequest flattens the draft into an inquiry record.
func (w *Wizard) InquiryRequest() *inquiries.CreateInquiryRequest {
	d := w.draft.clone()
	c := d.Contact
	return &inquiries.CreateInquiryRequest{
		Type:             w.flow.Type,
		FullName:         strings.TrimSpace(c.FullName),
		Email:            strings.TrimSpace(c.Email),
		PhoneCountryCode: c.PhoneCountryCode,
		Phone:            strings.TrimSpace(c.Phone),
		GuestCount:       c.GuestCount,
		MealPlan:         c.MealPlanChoice,
		Budget:           strings.TrimSpace(c.Budget),
		BudgetType:       c.BudgetType,
		Notes:            strings.TrimSpace(c.Notes),
		Intent:           d.Intent,
		Experiences:      d.SelectedTags,
		Preferences:      d.PreferenceToggles,
		Resorts:          d.SelectedEntities,
		CheckIn:          d.DateRange.CheckIn,
		CheckOut:         d.DateRange.CheckOut,
		Source:           w.flow.Source,
	}
}

func submittedEvent(inq *inquiries.Inquiry) events.InquirySubmittedV1 {
	return events.InquirySubmittedV1{
		InquiryID:        inq.ID,
		Type:             string(inq.Type),
		FullName:         inq.FullName,
		Email:            inq.Email,
		PhoneCountryCode: inq.PhoneCountryCode,
		Phone:            inq.Phone,
		GuestCount:       inq.GuestCount,
		Intent:           inq.Intent,
		Resorts:          inq.Resorts,
		CheckIn:          inq.CheckIn.String(),
		CheckOut:         inq.CheckOut.String(),
		MealPlan:         inq.MealPlan,
		Budget:           inq.Budget,
		BudgetType:       inq.BudgetType,
		Notes:            inq.Notes,
		SubmittedAt:      inq.CreatedAt,
	}
}
