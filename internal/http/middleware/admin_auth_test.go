package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedAdminToken(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(method, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func validClaims() jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   "ops@agency",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

func TestAdminJWT(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		header string
		want   int
	}{
		{"auth disabled", "", "Bearer x", http.StatusUnauthorized},
		{"missing header", "secret", "", http.StatusUnauthorized},
		{"not bearer", "secret", "Basic abc", http.StatusUnauthorized},
		{"wrong secret", "secret", "Bearer " + signedAdminToken(t, jwt.SigningMethodHS256, "wrong", validClaims()), http.StatusUnauthorized},
		{"wrong algorithm", "secret", "Bearer " + signedAdminToken(t, jwt.SigningMethodHS512, "secret", validClaims()), http.StatusUnauthorized},
		{"no expiry", "secret", "Bearer " + signedAdminToken(t, jwt.SigningMethodHS256, "secret", jwt.RegisteredClaims{Subject: "ops"}), http.StatusUnauthorized},
		{"valid", "secret", "Bearer " + signedAdminToken(t, jwt.SigningMethodHS256, "secret", validClaims()), http.StatusTeapot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				claims, ok := AdminClaimsFromContext(r.Context())
				if !ok || claims.Subject == "" {
					t.Fatalf("expected admin claims in context")
				}
				w.WriteHeader(http.StatusTeapot)
			})
			req := httptest.NewRequest(http.MethodGet, "/admin/inquiries", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AdminJWT(tt.secret)(next).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, rec.Code)
			}
		})
	}
}
