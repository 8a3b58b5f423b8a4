package wizard

import (
	"github.com/wolfman30/maldives-travel-platform/internal/catalog"
)

// StepView is one entry of the progress bar.
type StepView struct {
	Number    int    `json:"number"`
	ID        StepID `json:"id"`
	Complete  bool   `json:"complete"`
	Reachable bool   `json:"reachable"`
}

// Choices lists the fixed options of every field group.
type Choices struct {
	Intents     []string     `json:"intents"`
	Tags        []string     `json:"tags"`
	Preferences []Preference `json:"preferences"`
	MealPlans   []string     `json:"mealPlans"`
	BudgetTypes []string     `json:"budgetTypes"`
}

// View is the JSON shape returned for every wizard request.
type View struct {
	Variant       Variant         `json:"variant"`
	Step          int             `json:"step"`
	StepID        StepID          `json:"stepId"`
	TotalSteps    int             `json:"totalSteps"`
	HighestStep   int             `json:"highestStep"`
	Steps         []StepView      `json:"steps"`
	Draft         Draft           `json:"draft"`
	Resort        *catalog.Resort `json:"resort,omitempty"`
	CanAdvance    bool            `json:"canAdvance"`
	CanRetreat    bool            `json:"canRetreat"`
	ContinueLabel string          `json:"continueLabel,omitempty"`
	Missing       []string        `json:"missing,omitempty"`
	Nights        int             `json:"nights"`
	Choices       Choices         `json:"choices"`
	Submitting    bool            `json:"submitting"`
	Submitted     bool            `json:"submitted"`
	Restored      bool            `json:"restored"`
	Error         string          `json:"error,omitempty"`
	Outcome       *Outcome        `json:"outcome,omitempty"`
}

// View renders the wizard. submitting comes from the gateway.
func (w *Wizard) View(submitting bool) View {
	d := w.Draft()
	v := View{
		Variant:     w.flow.Variant,
		Step:        d.CurrentStep,
		StepID:      w.CurrentStepID(),
		TotalSteps:  w.flow.Total(),
		HighestStep: d.HighestStep,
		Draft:       d,
		CanAdvance:  !w.IsFinalStep() && w.StepComplete(w.CurrentStepID()),
		CanRetreat:  d.CurrentStep > 1,
		Nights:      d.DateRange.Nights(),
		Choices: Choices{
			Intents:     Intents,
			Tags:        ExperienceTags,
			Preferences: Preferences,
			MealPlans:   MealPlans,
			BudgetTypes: BudgetTypes,
		},
		Submitting: submitting,
		Submitted:  w.submitted,
		Restored:   w.restored,
		Error:      w.lastError,
	}
	for i, id := range w.flow.Steps {
		n := i + 1
		v.Steps = append(v.Steps, StepView{
			Number:    n,
			ID:        id,
			Complete:  w.StepComplete(id),
			Reachable: n <= d.HighestStep,
		})
	}
	if r, ok := w.Resort(); ok {
		v.Resort = &r
	}
	if v.StepID == StepExperiences {
		v.ContinueLabel = w.ContinueLabel()
	}
	if w.IsFinalStep() {
		v.Missing = w.Missing()
	}
	return v
}
