// Package drafts provides the durable key-value slots that hold wizard
// drafts between requests.
package drafts

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrEmpty is returned by Get when the slot holds nothing.
var ErrEmpty = errors.New("drafts: slot is empty")

// Slots stores opaque blobs under string keys. Put replaces the whole value.
// PutIfExists only overwrites an occupied slot and returns ErrEmpty when the
// key is absent, so a deleted slot is never recreated by a late writer.
type Slots interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	PutIfExists(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Key builds the slot key for a draft. Quotes are scoped per resort, so a
// guest can hold one quote draft for each resort they look at.
func Key(variant, resortSlug, sessionID string) string {
	parts := []string{"wizard", "draft", variant}
	if resortSlug != "" {
		parts = append(parts, resortSlug)
	}
	parts = append(parts, sessionID)
	return strings.Join(parts, ":")
}

// MemorySlots keeps blobs in process memory. Useful for tests and
// single-process development.
type MemorySlots struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemorySlots() *MemorySlots {
	return &MemorySlots{blobs: make(map[string][]byte)}
}

func (m *MemorySlots) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.blobs[key]
	if !ok {
		return nil, ErrEmpty
	}
	return append([]byte(nil), v...), nil
}

func (m *MemorySlots) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemorySlots) PutIfExists(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.blobs[key]; !ok {
		return ErrEmpty
	}
	m.blobs[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemorySlots) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

// Len reports how many slots are occupied.
func (m *MemorySlots) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}
