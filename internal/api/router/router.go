package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/maldives-travel-platform/internal/catalog"
	httpmiddleware "github.com/wolfman30/maldives-travel-platform/internal/http/middleware"
	"github.com/wolfman30/maldives-travel-platform/internal/inquiries"
	"github.com/wolfman30/maldives-travel-platform/internal/wizard"
	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger          *logging.Logger
	WizardHandler   *wizard.Handler
	CatalogHandler  *catalog.Handler
	InquiryHandler  *inquiries.Handler
	AdminAuthSecret string
	MetricsHandler  http.Handler

	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
	// SecureCookies marks the session cookie Secure; set outside development.
	SecureCookies bool
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	r.Use(httpmiddleware.RequestLogger(cfg.Logger))

	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	r.Group(func(api chi.Router) {
		if cfg.RateLimitRPS > 0 {
			api.Use(httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		}
		if cfg.CatalogHandler != nil {
			api.Route("/resorts", func(r chi.Router) {
				r.Get("/", cfg.CatalogHandler.List)
				r.Get("/{slug}", cfg.CatalogHandler.Get)
			})
		}
		if cfg.WizardHandler != nil {
			api.Route("/wizards/{variant}", func(r chi.Router) {
				r.Use(requireSession(cfg.SecureCookies))
				r.Get("/", cfg.WizardHandler.Get)
				r.Post("/actions", cfg.WizardHandler.Act)
				r.Get("/suggestions", cfg.WizardHandler.Suggestions)
				r.Get("/calendar", cfg.WizardHandler.Calendar)
				r.Post("/submit", cfg.WizardHandler.Submit)
			})
		}
	})

	if cfg.InquiryHandler != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			admin.Get("/inquiries", cfg.InquiryHandler.ListInquiries)
			admin.Get("/inquiries/{id}", cfg.InquiryHandler.GetInquiry)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
