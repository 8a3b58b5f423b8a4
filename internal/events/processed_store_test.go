package events

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
)

const testConsumer = "inquiry-notify"

func newMockProcessedStore(t *testing.T) (*ProcessedStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgx mock: %v", err)
	}
	t.Cleanup(mock.Close)
	return newProcessedStore(mock), mock
}

func TestProcessedStore_AlreadyProcessed(t *testing.T) {
	store, mock := newMockProcessedStore(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT EXISTS").WithArgs(testConsumer, "evt-seen").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS").WithArgs(testConsumer, "evt-new").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("SELECT EXISTS").WithArgs(testConsumer, "evt-down").
		WillReturnError(errors.New("connection reset"))

	seen, err := store.AlreadyProcessed(ctx, testConsumer, "evt-seen")
	if err != nil || !seen {
		t.Fatalf("expected evt-seen marked, got seen=%v err=%v", seen, err)
	}
	seen, err = store.AlreadyProcessed(ctx, testConsumer, "evt-new")
	if err != nil || seen {
		t.Fatalf("expected evt-new unmarked, got seen=%v err=%v", seen, err)
	}
	if _, err := store.AlreadyProcessed(ctx, testConsumer, "evt-down"); err == nil {
		t.Fatal("expected lookup error to surface")
	}
	if _, err := store.AlreadyProcessed(ctx, testConsumer, ""); !errors.Is(err, ErrMissingEventID) {
		t.Fatalf("expected ErrMissingEventID, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestProcessedStore_MarkProcessed(t *testing.T) {
	store, mock := newMockProcessedStore(t)
	ctx := context.Background()

	mock.ExpectExec("INSERT INTO processed_events").WithArgs(testConsumer, "evt-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO processed_events").WithArgs(testConsumer, "evt-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	first, err := store.MarkProcessed(ctx, testConsumer, "evt-1")
	if err != nil || !first {
		t.Fatalf("expected first mark to insert, got %v %v", first, err)
	}
	again, err := store.MarkProcessed(ctx, testConsumer, "evt-1")
	if err != nil || again {
		t.Fatalf("expected redelivered mark to be a no-op, got %v %v", again, err)
	}
	if _, err := store.MarkProcessed(ctx, testConsumer, ""); !errors.Is(err, ErrMissingEventID) {
		t.Fatalf("expected ErrMissingEventID, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
