package inquiries

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestInMemoryRepository_CreateAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	inq, err := repo.Create(ctx, validRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inq.ID == "" || inq.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp, got %+v", inq)
	}

	got, err := repo.GetByID(ctx, inq.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FullName != "Amelia Hart" || got.Preferences["islandSize"] != "Small Island" {
		t.Fatalf("unexpected inquiry %+v", got)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrInquiryNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestInMemoryRepository_EveryCreateIsNew(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	req := validRequest()

	a, _ := repo.Create(ctx, req)
	b, _ := repo.Create(ctx, req)
	if a.ID == b.ID {
		t.Fatal("expected distinct records for repeated submissions")
	}
	if repo.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", repo.Len())
	}
}

func TestInMemoryRepository_RejectsInvalid(t *testing.T) {
	repo := NewInMemoryRepository()
	req := validRequest()
	req.FullName = ""
	if _, err := repo.Create(context.Background(), req); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if repo.Len() != 0 {
		t.Fatal("invalid request must not be stored")
	}
}

func TestInMemoryRepository_List(t *testing.T) {
	repo := NewInMemoryRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	ctx := context.Background()

	plan, _ := repo.Create(ctx, validRequest())
	quoteReq := validRequest()
	quoteReq.Type = TypeResortQuote
	quote, _ := repo.Create(ctx, quoteReq)

	all, err := repo.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != quote.ID || all[1].ID != plan.ID {
		t.Fatalf("expected newest first, got %+v", all)
	}

	quotes, _ := repo.List(ctx, ListFilter{Type: TypeResortQuote})
	if len(quotes) != 1 || quotes[0].ID != quote.ID {
		t.Fatalf("expected only the quote, got %+v", quotes)
	}

	page, _ := repo.List(ctx, ListFilter{Limit: 1, Offset: 1})
	if len(page) != 1 || page[0].ID != plan.ID {
		t.Fatalf("unexpected page %+v", page)
	}

	empty, _ := repo.List(ctx, ListFilter{Offset: 5})
	if len(empty) != 0 {
		t.Fatalf("expected empty page, got %d", len(empty))
	}
}
