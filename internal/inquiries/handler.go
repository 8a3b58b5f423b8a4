package inquiries

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

// Handler serves the admin inquiry endpoints.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

// NewHandler creates a new inquiries handler
func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:   repo,
		logger: logger,
	}
}

// ListInquiriesResponse is the response for listing inquiries
type ListInquiriesResponse struct {
	Inquiries []*Inquiry `json:"inquiries"`
	Count     int        `json:"count"`
	Offset    int        `json:"offset"`
	Limit     int        `json:"limit"`
}

// ListInquiries handles GET /admin/inquiries requests
func (h *Handler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Limit:  50,
		Offset: 0,
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 && limit <= 100 {
			filter.Limit = limit
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}
	if t := r.URL.Query().Get("type"); t != "" {
		if !Type(t).Valid() {
			http.Error(w, ErrInvalidType.Error(), http.StatusBadRequest)
			return
		}
		filter.Type = Type(t)
	}

	inquiries, err := h.repo.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list inquiries", "error", err)
		http.Error(w, "failed to list inquiries", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListInquiriesResponse{
		Inquiries: inquiries,
		Count:     len(inquiries),
		Offset:    filter.Offset,
		Limit:     filter.Limit,
	})
}

// GetInquiry handles GET /admin/inquiries/{id} requests
func (h *Handler) GetInquiry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	inq, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrInquiryNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load inquiry", "error", err, "id", id)
		http.Error(w, "failed to load inquiry", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(inq)
}
