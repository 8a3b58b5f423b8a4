package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wolfman30/maldives-travel-platform/internal/calendar"
	"github.com/wolfman30/maldives-travel-platform/internal/catalog"
	"github.com/wolfman30/maldives-travel-platform/internal/drafts"
	"github.com/wolfman30/maldives-travel-platform/internal/events"
	"github.com/wolfman30/maldives-travel-platform/internal/inquiries"
	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

var testNow = time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	resorts, err := catalog.Fallback()
	require.NoError(t, err)
	return catalog.New(resorts)
}

// countingSlots records every write so tests can assert the persist-on-every-
// dispatch rule.
type countingSlots struct {
	*drafts.MemorySlots
	mu   sync.Mutex
	puts int
	dels int
	err  error
}

func newCountingSlots() *countingSlots {
	return &countingSlots{MemorySlots: drafts.NewMemorySlots()}
}

func (c *countingSlots) Get(ctx context.Context, key string) ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.MemorySlots.Get(ctx, key)
}

func (c *countingSlots) Put(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	c.puts++
	c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	return c.MemorySlots.Put(ctx, key, value)
}

func (c *countingSlots) PutIfExists(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	c.puts++
	c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	return c.MemorySlots.PutIfExists(ctx, key, value)
}

func (c *countingSlots) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	c.dels++
	c.mu.Unlock()
	return c.MemorySlots.Delete(ctx, key)
}

func (c *countingSlots) writes() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.puts, c.dels
}

type failingRepo struct {
	inquiries.Repository
	err error
}

func (f *failingRepo) Create(ctx context.Context, req *inquiries.CreateInquiryRequest) (*inquiries.Inquiry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.Repository.Create(ctx, req)
}

// blockingRepo holds its first Create until release is closed.
type blockingRepo struct {
	inquiries.Repository
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingRepo) Create(ctx context.Context, req *inquiries.CreateInquiryRequest) (*inquiries.Inquiry, error) {
	b.once.Do(func() {
		close(b.entered)
		<-b.release
	})
	return b.Repository.Create(ctx, req)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.InquirySubmittedV1
	err    error
}

func (p *recordingPublisher) PublishInquirySubmitted(_ context.Context, evt events.InquirySubmittedV1) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

type fixture struct {
	slots     *countingSlots
	repo      *inquiries.InMemoryRepository
	publisher *recordingPublisher
	gateway   *Gateway
	service   *Service
}

func newFixture(t *testing.T, repo inquiries.Repository) *fixture {
	t.Helper()
	mem := inquiries.NewInMemoryRepository()
	if repo == nil {
		repo = mem
	}
	f := &fixture{
		slots:     newCountingSlots(),
		repo:      mem,
		publisher: &recordingPublisher{},
	}
	f.gateway = NewGateway(repo, f.publisher, logging.Default(), nil)
	f.service = NewService(ServiceConfig{
		Slots:   f.slots,
		Catalog: testCatalog(t),
		Gateway: f.gateway,
		Logger:  logging.Default(),
		Now:     func() time.Time { return testNow },
	})
	return f
}

func (f *fixture) open(t *testing.T, variant, resort string) *Wizard {
	t.Helper()
	w, err := f.service.Open(context.Background(), variant, "sess-1", resort)
	require.NoError(t, err)
	return w
}

func dispatch(t *testing.T, w *Wizard, actions ...Action) Outcome {
	t.Helper()
	var out Outcome
	for _, a := range actions {
		var err error
		out, err = w.Dispatch(context.Background(), a)
		require.NoError(t, err)
	}
	return out
}

func date(s string) calendar.Date { return calendar.MustParseDate(s) }

func str(s string) *string { return &s }

// completePlan walks a plan wizard to its contact step with every field filled.
func completePlan(t *testing.T, w *Wizard) {
	t.Helper()
	dispatch(t, w,
		SelectIntent{Intent: "Honeymoon"},
		ToggleTag{Tag: "Spa"},
		Advance{},
		SetPreference{Key: "islandSize", Value: "Small Island"},
		SetPreference{Key: "transfer", Value: "Seaplane"},
		SetPreference{Key: "villa", Value: "Water Villa"},
		Advance{},
		AddResort{Name: "Soneva Fushi"},
		Advance{},
		PickDate{Date: date("2026-03-10")},
		PickDate{Date: date("2026-03-15")},
		Advance{},
		UpdateContact{Patch: ContactPatch{
			FullName: str("Amelia Hart"),
			Email:    str("amelia@example.com"),
			Phone:    str("7700900123"),
		}},
	)
	require.True(t, w.IsFinalStep())
}

var errNetwork = errors.New("network unreachable")
