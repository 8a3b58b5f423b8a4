// Package wizard runs the multi-step trip planning and resort quote forms.
// A Wizard is rebuilt from its persisted draft on every request, mutated by
// one Action, and saved again as a whole.
package wizard

import (
	"context"
	"errors"

	"github.com/wolfman30/maldives-travel-platform/internal/calendar"
	"github.com/wolfman30/maldives-travel-platform/internal/catalog"
	"github.com/wolfman30/maldives-travel-platform/internal/drafts"
	"github.com/wolfman30/maldives-travel-platform/internal/observability/metrics"
)

// Outcome describes the effect of one dispatched action.
type Outcome struct {
	Changed     bool `json:"changed"`
	StepChanged bool `json:"stepChanged"`
	ScrollToTop bool `json:"scrollToTop"`
	From        int  `json:"from"`
	To          int  `json:"to"`
}

// Wizard is one guest's form, bound to its draft slot.
type Wizard struct {
	flow     Flow
	draft    Draft
	store    *DraftStore
	catalog  *catalog.Catalog
	resort   *catalog.Resort
	today    calendar.Date
	query    string
	restored bool
	// stored is set once the slot is known to hold this wizard's draft.
	stored    bool
	submitted bool
	lastError string
	metrics   *metrics.WizardMetrics

	// OnStepChange, when set, runs after every step change.
	OnStepChange func(from, to int)
}

// Options configures New.
type Options struct {
	Flow    Flow
	Store   *DraftStore
	Catalog *catalog.Catalog
	// Resort is the preselected resort of a quote wizard.
	Resort  *catalog.Resort
	Today   calendar.Date
	Metrics *metrics.WizardMetrics
}

// New builds a wizard around draft. The draft is normalised for the flow and
// a quote wizard's shortlist is pinned to its resort.
func New(draft Draft, opts Options) *Wizard {
	draft = draft.clone()
	draft.normalize(opts.Flow.Total())
	if opts.Resort != nil {
		draft.SelectedEntities = []string{opts.Resort.Name}
	}
	return &Wizard{
		flow:    opts.Flow,
		draft:   draft,
		store:   opts.Store,
		catalog: opts.Catalog,
		resort:  opts.Resort,
		today:   opts.Today,
		metrics: opts.Metrics,
	}
}

// Open loads the draft from store and builds the wizard.
func Open(ctx context.Context, opts Options) (*Wizard, error) {
	draft, restored, err := opts.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	w := New(draft, opts)
	w.restored = restored
	w.stored = restored
	return w, nil
}

// Draft returns a copy of the current draft.
func (w *Wizard) Draft() Draft { return w.draft.clone() }

func (w *Wizard) Flow() Flow { return w.flow }

// Resort returns the preselected resort of a quote wizard.
func (w *Wizard) Resort() (catalog.Resort, bool) {
	if w.resort == nil {
		return catalog.Resort{}, false
	}
	return *w.resort, true
}

// Restored reports whether the draft came from the slot.
func (w *Wizard) Restored() bool { return w.restored }

// Submitted reports whether the wizard reached its terminal state.
func (w *Wizard) Submitted() bool { return w.submitted }

// LastError is the guest-facing message of the last failed submission.
func (w *Wizard) LastError() string { return w.lastError }

func (w *Wizard) CurrentStep() int { return w.draft.CurrentStep }

func (w *Wizard) CurrentStepID() StepID { return w.flow.Step(w.draft.CurrentStep) }

// IsFinalStep reports whether the wizard is on its last step.
func (w *Wizard) IsFinalStep() bool { return w.draft.CurrentStep == w.flow.Total() }

// Dispatch applies a and persists the draft. It is the only place the draft
// is saved, so every accepted or rejected action leaves the slot holding the
// complete current draft.
func (w *Wizard) Dispatch(ctx context.Context, a Action) (Outcome, error) {
	if w.submitted {
		return Outcome{}, ErrSubmitted
	}
	from := w.draft.CurrentStep
	out := Outcome{Changed: a.apply(w), From: from, To: w.draft.CurrentStep}
	if out.To != from {
		out.StepChanged = true
		out.ScrollToTop = true
		w.metrics.ObserveStep(string(w.flow.Variant), string(w.CurrentStepID()))
		if w.OnStepChange != nil {
			w.OnStepChange(from, out.To)
		}
	}
	if err := w.persist(ctx); err != nil {
		return out, err
	}
	return out, nil
}

// Advance moves to the next step when the current one is complete.
func (w *Wizard) Advance(ctx context.Context) (Outcome, error) { return w.Dispatch(ctx, Advance{}) }

// Retreat moves to the previous step.
func (w *Wizard) Retreat(ctx context.Context) (Outcome, error) { return w.Dispatch(ctx, Retreat{}) }

// GoToStep jumps to any step up to the highest reached.
func (w *Wizard) GoToStep(ctx context.Context, n int) (Outcome, error) {
	return w.Dispatch(ctx, GoToStep{Step: n})
}

// persist saves the draft. Once the slot has held the draft it is only ever
// overwritten, never recreated: a slot that disappears underneath the wizard
// was cleared by a successful submission, and the wizard becomes terminal.
func (w *Wizard) persist(ctx context.Context) error {
	if w.store == nil {
		return nil
	}
	if !w.stored {
		if err := w.store.Save(ctx, w.draft); err != nil {
			return err
		}
		w.stored = true
		return nil
	}
	if err := w.store.Update(ctx, w.draft); err != nil {
		if errors.Is(err, drafts.ErrEmpty) {
			w.submitted = true
			return ErrSubmitted
		}
		return err
	}
	return nil
}

func (w *Wizard) advance() bool {
	cur := w.draft.CurrentStep
	if cur >= w.flow.Total() || !w.StepComplete(w.flow.Step(cur)) {
		return false
	}
	w.draft.CurrentStep = cur + 1
	if w.draft.CurrentStep > w.draft.HighestStep {
		w.draft.HighestStep = w.draft.CurrentStep
	}
	return true
}

func (w *Wizard) retreat() bool {
	if w.draft.CurrentStep <= 1 {
		return false
	}
	w.draft.CurrentStep--
	return true
}

func (w *Wizard) goToStep(n int) bool {
	if n < 1 || n > w.draft.HighestStep || n == w.draft.CurrentStep {
		return false
	}
	w.draft.CurrentStep = n
	return true
}

// StepComplete reports whether step's required fields are filled.
func (w *Wizard) StepComplete(step StepID) bool {
	switch step {
	case StepIntent:
		return w.draft.Intent != ""
	case StepExperiences, StepResorts:
		return true
	case StepPreferences:
		return len(w.missingPreferences()) == 0
	case StepDates:
		return w.draft.DateRange.Complete()
	default:
		return false
	}
}

// Missing lists every field that blocks submission, in form order. An empty
// result means the form is valid.
func (w *Wizard) Missing() []string {
	var missing []string
	d := w.draft
	for _, step := range w.flow.Steps {
		switch step {
		case StepIntent:
			if d.Intent == "" {
				missing = append(missing, "intent")
			}
		case StepPreferences:
			for _, key := range w.missingPreferences() {
				missing = append(missing, "preferenceToggles."+key)
			}
		case StepDates:
			if d.DateRange.CheckIn.IsZero() {
				missing = append(missing, "dateRange.checkIn")
			}
			if d.DateRange.CheckOut.IsZero() {
				missing = append(missing, "dateRange.checkOut")
			}
		case StepContact:
			missing = append(missing, missingContact(d.Contact)...)
		}
	}
	if w.flow.Variant == VariantQuote && len(d.SelectedEntities) == 0 {
		missing = append(missing, "selectedEntities")
	}
	return missing
}

func (w *Wizard) missingPreferences() []string {
	var missing []string
	for _, p := range Preferences {
		if _, ok := w.draft.PreferenceToggles[p.Key]; !ok {
			missing = append(missing, p.Key)
		}
	}
	return missing
}
