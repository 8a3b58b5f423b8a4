package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	httpmiddleware "github.com/wolfman30/maldives-travel-platform/internal/http/middleware"
	"github.com/wolfman30/maldives-travel-platform/internal/session"
)

const (
	sessionCookie    = "wizard_session"
	sessionCookieTTL = 90 * 24 * time.Hour
)

// requireSession resolves the guest session from the X-Session-ID header or
// the session cookie, issuing a new cookie when neither is present.
func requireSession(secureCookie bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(httpmiddleware.SessionHeader))
			if id != "" && !session.ValidID(id) {
				http.Error(w, "invalid "+httpmiddleware.SessionHeader, http.StatusBadRequest)
				return
			}
			if id == "" {
				if c, err := r.Cookie(sessionCookie); err == nil && session.ValidID(c.Value) {
					id = c.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(sessionCookieTTL.Seconds()),
					HttpOnly: true,
					Secure:   secureCookie,
					SameSite: http.SameSiteLaxMode,
				})
			}
			w.Header().Set(httpmiddleware.SessionHeader, id)
			next.ServeHTTP(w, r.WithContext(session.WithID(r.Context(), id)))
		})
	}
}
