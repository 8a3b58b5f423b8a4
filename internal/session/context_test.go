package session

import (
	"context"
	"strings"
	"testing"
)

func TestWithIDAndIDFromContext(t *testing.T) {
	ctx := WithID(context.Background(), "sess-123")

	got, ok := IDFromContext(ctx)
	if !ok {
		t.Fatalf("expected session id to be present")
	}
	if got != "sess-123" {
		t.Fatalf("expected sess-123, got %s", got)
	}
}

func TestIDFromContext_EmptyOrMissing(t *testing.T) {
	ctx := context.Background()
	if _, ok := IDFromContext(ctx); ok {
		t.Fatalf("expected missing session id to return false")
	}

	ctx = context.WithValue(ctx, sessionKey, 42)
	if _, ok := IDFromContext(ctx); ok {
		t.Fatalf("expected non-string session id to return false")
	}

	ctx = WithID(context.Background(), "")
	if _, ok := IDFromContext(ctx); ok {
		t.Fatalf("expected empty session id to return false")
	}
}

func TestValidID(t *testing.T) {
	tests := map[string]bool{
		"3f0c2a4e-8d4b-4b7a-9a61-1d2c3b4a5f6e": true,
		"abc_DEF-123":                          true,
		"":                                     false,
		"wizard:draft:plan:x":                  false,
		"has space":                            false,
		strings.Repeat("a", MaxIDLength+1):     false,
	}
	for id, want := range tests {
		if got := ValidID(id); got != want {
			t.Errorf("ValidID(%q) = %v, want %v", id, got, want)
		}
	}
}
