package wizard

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/maldives-travel-platform/internal/calendar"
	"github.com/wolfman30/maldives-travel-platform/internal/catalog"
	"github.com/wolfman30/maldives-travel-platform/internal/inquiries"
	"github.com/wolfman30/maldives-travel-platform/internal/session"
	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

const maxActionBytes = 64 << 10

// Handler serves the /wizards/{variant} endpoints.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// SubmitResponse is the body of a successful submission.
type SubmitResponse struct {
	Inquiry *inquiries.Inquiry `json:"inquiry"`
	View    View               `json:"view"`
}

// SuggestionsResponse is the body of GET /wizards/{variant}/suggestions.
type SuggestionsResponse struct {
	Query   string           `json:"query"`
	Resorts []catalog.Resort `json:"resorts"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}

// Get handles GET /wizards/{variant}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	wz, ok := h.open(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.service.View(wz))
}

// Act handles POST /wizards/{variant}/actions.
func (h *Handler) Act(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxActionBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "action body too large"})
		return
	}
	action, err := DecodeAction(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	wz, ok := h.open(w, r)
	if !ok {
		return
	}
	outcome, err := wz.Dispatch(r.Context(), action)
	if errors.Is(err, ErrSubmitted) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("failed to persist draft", "error", err, "variant", wz.Flow().Variant)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "could not save your progress"})
		return
	}
	view := h.service.View(wz)
	view.Outcome = &outcome
	writeJSON(w, http.StatusOK, view)
}

// Suggestions handles GET /wizards/{variant}/suggestions?q=.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	wz, ok := h.open(w, r)
	if !ok {
		return
	}
	wz.SetQuery(r.URL.Query().Get("q"))
	resorts := wz.Suggestions()
	if resorts == nil {
		resorts = []catalog.Resort{}
	}
	writeJSON(w, http.StatusOK, SuggestionsResponse{Query: wz.Query(), Resorts: resorts})
}

// Calendar handles GET /wizards/{variant}/calendar?month=YYYY-MM&nav=prev|next.
// nav pages one month from the requested (or opening) month.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	wz, ok := h.open(w, r)
	if !ok {
		return
	}
	picker := wz.Picker()
	if m := r.URL.Query().Get("month"); m != "" {
		month, err := calendar.ParseMonth(m)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		picker.Show(month)
	}
	switch r.URL.Query().Get("nav") {
	case "":
	case "prev":
		picker.Prev()
	case "next":
		picker.Next()
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "nav must be prev or next"})
		return
	}
	writeJSON(w, http.StatusOK, picker.Grid())
}

// Submit handles POST /wizards/{variant}/submit.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	wz, ok := h.open(w, r)
	if !ok {
		return
	}
	inq, err := h.service.Submit(r.Context(), wz)
	if err != nil {
		var incomplete *IncompleteError
		var failed *SubmissionError
		switch {
		case errors.As(err, &incomplete):
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: ErrIncomplete.Error(), Missing: incomplete.Missing})
		case errors.As(err, &failed):
			writeJSON(w, http.StatusBadGateway, h.service.View(wz))
		case errors.Is(err, ErrSubmissionInFlight), errors.Is(err, ErrNotFinalStep), errors.Is(err, ErrSubmitted):
			writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		default:
			h.logger.Error("unexpected submission error", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "submission failed"})
		}
		return
	}
	writeJSON(w, http.StatusCreated, SubmitResponse{Inquiry: inq, View: h.service.View(wz)})
}

func (h *Handler) open(w http.ResponseWriter, r *http.Request) (*Wizard, bool) {
	sessionID, _ := session.IDFromContext(r.Context())
	wz, err := h.service.Open(r.Context(), chi.URLParam(r, "variant"), sessionID, r.URL.Query().Get("resort"))
	if err == nil {
		return wz, true
	}
	switch {
	case errors.Is(err, ErrUnknownVariant), errors.Is(err, ErrUnknownResort):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrNoSession):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("failed to open wizard", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "could not load your progress"})
	}
	return nil, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
