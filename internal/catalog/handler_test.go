package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestHandler_List(t *testing.T) {
	resorts, _ := Fallback()
	h := NewHandler(New(resorts), nil)

	req := httptest.NewRequest(http.MethodGet, "/resorts?q=soneva", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp ListResortsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected 2 resorts, got %d", resp.Count)
	}
}

func TestHandler_Get(t *testing.T) {
	resorts, _ := Fallback()
	h := NewHandler(New(resorts), nil)

	tests := []struct {
		slug string
		want int
	}{
		{"kudadoo", http.StatusOK},
		{"atlantis", http.StatusNotFound},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/resorts/"+tt.slug, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("slug", tt.slug)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

		rr := httptest.NewRecorder()
		h.Get(rr, req)
		if rr.Code != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.slug, tt.want, rr.Code)
		}
	}
}
