package wizard

import (
	"context"
	"errors"
	"time"

	"github.com/wolfman30/maldives-travel-platform/internal/calendar"
	"github.com/wolfman30/maldives-travel-platform/internal/catalog"
	"github.com/wolfman30/maldives-travel-platform/internal/drafts"
	"github.com/wolfman30/maldives-travel-platform/internal/inquiries"
	"github.com/wolfman30/maldives-travel-platform/internal/observability/metrics"
	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

// ErrNoSession is returned when a wizard is opened without a session id.
var ErrNoSession = errors.New("wizard: session id required")

// ServiceConfig wires a Service.
type ServiceConfig struct {
	Slots    drafts.Slots
	Catalog  *catalog.Catalog
	Gateway  *Gateway
	Location *time.Location
	Logger   *logging.Logger
	Metrics  *metrics.WizardMetrics
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Service opens wizards for guest sessions and submits them.
type Service struct {
	slots    drafts.Slots
	catalog  *catalog.Catalog
	gateway  *Gateway
	location *time.Location
	logger   *logging.Logger
	metrics  *metrics.WizardMetrics
	now      func() time.Time
}

func NewService(cfg ServiceConfig) *Service {
	if cfg.Slots == nil {
		panic("wizard: draft slots cannot be nil")
	}
	if cfg.Gateway == nil {
		panic("wizard: gateway cannot be nil")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		slots:    cfg.Slots,
		catalog:  cfg.Catalog,
		gateway:  cfg.Gateway,
		location: cfg.Location,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		now:      cfg.Now,
	}
}

// Today is the current day in the agency's time zone.
func (s *Service) Today() calendar.Date {
	return calendar.Today(s.now(), s.location)
}

// Open rehydrates the wizard for a session. Quote wizards need the slug of a
// catalog resort; plan wizards ignore resortSlug.
func (s *Service) Open(ctx context.Context, variant, sessionID, resortSlug string) (*Wizard, error) {
	flow, err := FlowFor(variant)
	if err != nil {
		return nil, err
	}
	if sessionID == "" {
		return nil, ErrNoSession
	}

	var resort *catalog.Resort
	if flow.Variant == VariantQuote {
		r, ok := s.catalog.BySlug(resortSlug)
		if !ok {
			return nil, ErrUnknownResort
		}
		resort = &r
	} else {
		resortSlug = ""
	}

	store := NewDraftStore(s.slots, drafts.Key(variant, resortSlug, sessionID), flow, s.logger, s.metrics)
	return Open(ctx, Options{
		Flow:    flow,
		Store:   store,
		Catalog: s.catalog,
		Resort:  resort,
		Today:   s.Today(),
		Metrics: s.metrics,
	})
}

// Submit forwards to the gateway.
func (s *Service) Submit(ctx context.Context, w *Wizard) (*inquiries.Inquiry, error) {
	return s.gateway.Submit(ctx, w)
}

// View renders w, including whether a submission is outstanding.
func (s *Service) View(w *Wizard) View {
	return w.View(s.gateway.Submitting(w))
}
