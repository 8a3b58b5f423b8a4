package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wolfman30/maldives-travel-platform/internal/drafts"
	"github.com/wolfman30/maldives-travel-platform/internal/observability/metrics"
	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

// Draft load outcomes, used as metric labels.
const (
	LoadRestored = "restored"
	LoadFresh    = "fresh"
	LoadCorrupt  = "corrupt"
)

// DraftStore saves one wizard's draft in one slot.
type DraftStore struct {
	slots   drafts.Slots
	key     string
	flow    Flow
	logger  *logging.Logger
	metrics *metrics.WizardMetrics
}

// NewDraftStore binds a slot key to a flow.
func NewDraftStore(slots drafts.Slots, key string, flow Flow, logger *logging.Logger, m *metrics.WizardMetrics) *DraftStore {
	if slots == nil {
		panic("wizard: draft slots cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &DraftStore{slots: slots, key: key, flow: flow, logger: logger, metrics: m}
}

// Key returns the slot key.
func (s *DraftStore) Key() string { return s.key }

// Save writes the whole draft.
func (s *DraftStore) Save(ctx context.Context, d Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("wizard: marshal draft: %w", err)
	}
	if err := s.slots.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("wizard: save draft: %w", err)
	}
	return nil
}

// Update overwrites the stored draft only while the slot still exists. It
// returns drafts.ErrEmpty once the slot has been cleared.
func (s *DraftStore) Update(ctx context.Context, d Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("wizard: marshal draft: %w", err)
	}
	if err := s.slots.PutIfExists(ctx, s.key, data); err != nil {
		return fmt.Errorf("wizard: save draft: %w", err)
	}
	return nil
}

// Exists reports whether the slot currently holds a draft.
func (s *DraftStore) Exists(ctx context.Context) (bool, error) {
	if _, err := s.slots.Get(ctx, s.key); err != nil {
		if errors.Is(err, drafts.ErrEmpty) {
			return false, nil
		}
		return false, fmt.Errorf("wizard: check draft: %w", err)
	}
	return true, nil
}

// Load returns the stored draft, or a fresh one when the slot is empty or
// holds something that does not decode. Only transport failures are errors.
// The second result reports whether a stored draft was restored.
func (s *DraftStore) Load(ctx context.Context) (Draft, bool, error) {
	data, err := s.slots.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, drafts.ErrEmpty) {
			s.metrics.ObserveDraftLoad(string(s.flow.Variant), LoadFresh)
			return NewDraft(), false, nil
		}
		return Draft{}, false, fmt.Errorf("wizard: load draft: %w", err)
	}

	d := NewDraft()
	if err := json.Unmarshal(data, &d); err != nil {
		s.logger.Warn("discarding corrupt draft", "key", s.key, "error", err, "bytes", len(data))
		s.metrics.ObserveDraftLoad(string(s.flow.Variant), LoadCorrupt)
		return NewDraft(), false, nil
	}
	d.normalize(s.flow.Total())
	s.metrics.ObserveDraftLoad(string(s.flow.Variant), LoadRestored)
	return d, true, nil
}

// Clear deletes the slot.
func (s *DraftStore) Clear(ctx context.Context) error {
	if err := s.slots.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("wizard: clear draft: %w", err)
	}
	return nil
}
