package inquiries

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for inquiry storage. Every Create is a
// new record; inquiries are never updated.
type Repository interface {
	Create(ctx context.Context, req *CreateInquiryRequest) (*Inquiry, error)
	GetByID(ctx context.Context, id string) (*Inquiry, error)
	List(ctx context.Context, filter ListFilter) ([]*Inquiry, error)
}

// InMemoryRepository keeps inquiries in process memory.
type InMemoryRepository struct {
	mu        sync.RWMutex
	inquiries map[string]*Inquiry
	now       func() time.Time
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		inquiries: make(map[string]*Inquiry),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, req *CreateInquiryRequest) (*Inquiry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	inq := req.inquiry(uuid.New().String(), r.now())

	r.mu.Lock()
	r.inquiries[inq.ID] = inq
	r.mu.Unlock()

	return inq, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Inquiry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inq, ok := r.inquiries[id]
	if !ok {
		return nil, ErrInquiryNotFound
	}
	return inq, nil
}

// List returns inquiries newest first.
func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]*Inquiry, error) {
	r.mu.RLock()
	out := make([]*Inquiry, 0, len(r.inquiries))
	for _, inq := range r.inquiries {
		if filter.Type != "" && inq.Type != filter.Type {
			continue
		}
		out = append(out, inq)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if filter.Offset >= len(out) {
		return []*Inquiry{}, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

// Len reports how many inquiries are stored.
func (r *InMemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.inquiries)
}
