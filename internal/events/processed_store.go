package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrMissingEventID is returned when an envelope without an id reaches the
// dedupe table.
var ErrMissingEventID = errors.New("events: event id required")

type dedupeConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ProcessedStore is the processed_events table. The inquiry worker marks an
// envelope there after its notification goes out; a queue redelivery of the
// same envelope is then acknowledged without mailing the team twice.
type ProcessedStore struct {
	conn dedupeConn
}

// NewProcessedStore panics on a nil pool.
func NewProcessedStore(pool *pgxpool.Pool) *ProcessedStore {
	if pool == nil {
		panic("events: processed store needs a pgx pool")
	}
	return newProcessedStore(pool)
}

func newProcessedStore(conn dedupeConn) *ProcessedStore {
	return &ProcessedStore{conn: conn}
}

const selectProcessed = `SELECT EXISTS (
	SELECT 1 FROM processed_events WHERE consumer = $1 AND event_id = $2
)`

// AlreadyProcessed reports whether consumer has marked eventID.
func (s *ProcessedStore) AlreadyProcessed(ctx context.Context, consumer, eventID string) (bool, error) {
	if eventID == "" {
		return false, ErrMissingEventID
	}
	var seen bool
	err := s.conn.QueryRow(ctx, selectProcessed, consumer, eventID).Scan(&seen)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("events: look up %s for %s: %w", eventID, consumer, err)
	}
	return seen, nil
}

const insertProcessed = `INSERT INTO processed_events (consumer, event_id)
VALUES ($1, $2)
ON CONFLICT (consumer, event_id) DO NOTHING`

// MarkProcessed records eventID for consumer. The bool is false when another
// delivery got there first.
func (s *ProcessedStore) MarkProcessed(ctx context.Context, consumer, eventID string) (bool, error) {
	if eventID == "" {
		return false, ErrMissingEventID
	}
	tag, err := s.conn.Exec(ctx, insertProcessed, consumer, eventID)
	if err != nil {
		return false, fmt.Errorf("events: mark %s for %s: %w", eventID, consumer, err)
	}
	return tag.RowsAffected() == 1, nil
}
