package inquiries

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
)

var inquiryColumns = []string{
	"id", "type", "full_name", "email", "phone_country_code", "phone", "guest_count", "meal_plan",
	"budget", "budget_type", "notes", "intent", "experiences", "preferences", "resorts",
	"check_in", "check_out", "source", "created_at",
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestPostgresRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithExec(mock)
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("INSERT INTO inquiries").
		WithArgs(anyArgs(18)...).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(created))

	inq, err := repo.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uuid.Parse(inq.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", inq.ID)
	}
	if !inq.CreatedAt.Equal(created) {
		t.Fatalf("expected created_at from database, got %v", inq.CreatedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_CreateValidatesFirst(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	req := validRequest()
	req.GuestCount = 0
	if _, err := newPostgresRepositoryWithExec(mock).Create(context.Background(), req); !errors.Is(err, ErrInvalidGuestCount) {
		t.Fatalf("expected ErrInvalidGuestCount, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database call: %v", err)
	}
}

func TestPostgresRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithExec(mock)
	id := uuid.New().String()
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT").WithArgs(id).WillReturnRows(pgxmock.NewRows(inquiryColumns).AddRow(
		id, "resort_quote", "Amelia Hart", "amelia@example.com", "+44", "7700900123", 2, "Half Board",
		"8000", "total", "", "Anniversary", []string{}, []byte(`{"islandSize":"Large Island"}`), []string{"Velaa Private Island"},
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), "quote_wizard", created,
	))

	inq, err := repo.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if inq.Type != TypeResortQuote || inq.CheckIn.String() != "2026-03-10" || inq.Nights() != 7 {
		t.Fatalf("unexpected inquiry %+v", inq)
	}
	if inq.Preferences["islandSize"] != "Large Island" {
		t.Fatalf("unexpected preferences %v", inq.Preferences)
	}

	missing := uuid.New().String()
	mock.ExpectQuery("SELECT").WithArgs(missing).WillReturnError(pgx.ErrNoRows)
	if _, err := repo.GetByID(context.Background(), missing); !errors.Is(err, ErrInquiryNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if _, err := repo.GetByID(context.Background(), "not-a-uuid"); !errors.Is(err, ErrInquiryNotFound) {
		t.Fatalf("expected not found for malformed id, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	defer mock.Close()

	repo := newPostgresRepositoryWithExec(mock)
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM inquiries WHERE type = \\$1 ORDER BY created_at DESC, id LIMIT \\$2").
		WithArgs("trip_plan", 10).
		WillReturnRows(pgxmock.NewRows(inquiryColumns).AddRow(
			uuid.New().String(), "trip_plan", "Amelia Hart", "amelia@example.com", "+44", "7700900123", 2, "",
			"", "", "", "Honeymoon", []string{"Spa"}, []byte(`{}`), []string{},
			time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), "plan_wizard", created,
		))

	out, err := repo.List(context.Background(), ListFilter{Type: TypeTripPlan, Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 || out[0].Experiences[0] != "Spa" {
		t.Fatalf("unexpected list %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
