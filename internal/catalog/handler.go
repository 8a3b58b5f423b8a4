package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

// Handler serves the public resort endpoints.
type Handler struct {
	catalog *Catalog
	logger  *logging.Logger
}

func NewHandler(c *Catalog, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{catalog: c, logger: logger}
}

// ListResortsResponse is the body of GET /resorts.
type ListResortsResponse struct {
	Resorts []Resort `json:"resorts"`
	Count   int      `json:"count"`
}

// List handles GET /resorts. With ?q= it returns search suggestions instead
// of the full list.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var resorts []Resort
	if q := r.URL.Query().Get("q"); q != "" {
		resorts = h.catalog.Search(q, nil)
	} else {
		resorts = h.catalog.All()
	}
	if resorts == nil {
		resorts = []Resort{}
	}
	writeJSON(w, http.StatusOK, ListResortsResponse{Resorts: resorts, Count: len(resorts)})
}

// Get handles GET /resorts/{slug}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	resort, ok := h.catalog.BySlug(slug)
	if !ok {
		h.logger.Debug("resort not found", "slug", slug)
		http.Error(w, ErrNotFound.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, resort)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
