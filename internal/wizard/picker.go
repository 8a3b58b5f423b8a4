package wizard

import (
	"strings"

	"github.com/wolfman30/maldives-travel-platform/internal/catalog"
)

// SetQuery sets the resort search text. The query is view state and is not
// saved with the draft.
func (w *Wizard) SetQuery(q string) { w.query = q }

func (w *Wizard) Query() string { return w.query }

// Suggestions returns catalog matches for the current query that are not
// already shortlisted.
func (w *Wizard) Suggestions() []catalog.Resort {
	if !w.flow.Has(StepResorts) {
		return nil
	}
	return w.catalog.Search(w.query, w.draft.SelectedEntities)
}

// Selected reports whether name is shortlisted.
func (w *Wizard) Selected(name string) bool {
	for _, n := range w.draft.SelectedEntities {
		if n == name {
			return true
		}
	}
	return false
}

func (w *Wizard) addResort(name string) bool {
	name = strings.TrimSpace(name)
	if !w.flow.Has(StepResorts) || len(w.draft.SelectedEntities) >= MaxResorts || w.Selected(name) {
		return false
	}
	if _, ok := w.catalog.ByName(name); !ok {
		return false
	}
	w.draft.SelectedEntities = append(w.draft.SelectedEntities, name)
	w.query = ""
	return true
}

func (w *Wizard) removeResort(name string) bool {
	if !w.flow.Has(StepResorts) {
		return false
	}
	for i, n := range w.draft.SelectedEntities {
		if n == name {
			w.draft.SelectedEntities = append(w.draft.SelectedEntities[:i:i], w.draft.SelectedEntities[i+1:]...)
			return true
		}
	}
	return false
}
