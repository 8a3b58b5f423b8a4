// Package session carries the anonymous guest session id that scopes wizard
// drafts.
package session

import (
	"context"
	"strings"
)

type ctxKey string

const sessionKey ctxKey = "maldives.session_id"

// MaxIDLength bounds ids accepted from clients.
const MaxIDLength = 128

// WithID stores the session id in context.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}

// IDFromContext extracts the session id if present.
func IDFromContext(ctx context.Context) (string, bool) {
	val := ctx.Value(sessionKey)
	if val == nil {
		return "", false
	}
	id, ok := val.(string)
	return id, ok && id != ""
}

// ValidID reports whether a client supplied id is usable as part of a slot
// key: non-empty, bounded, and limited to URL-safe characters.
func ValidID(id string) bool {
	if id == "" || len(id) > MaxIDLength {
		return false
	}
	return strings.IndexFunc(id, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_')
	}) < 0
}
