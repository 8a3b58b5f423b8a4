package inquiries

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wolfman30/maldives-travel-platform/internal/calendar"
)

type rowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores inquiries in the relational database.
type PostgresRepository struct {
	pool rowQuerier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("inquiries: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func newPostgresRepositoryWithExec(exec rowQuerier) *PostgresRepository {
	if exec == nil {
		panic("inquiries: exec required")
	}
	return &PostgresRepository{pool: exec}
}

const selectColumns = `
	id, type, full_name, email, phone_country_code, phone, guest_count, meal_plan,
	budget, budget_type, notes, intent, experiences, preferences, resorts,
	check_in, check_out, source, created_at`

// Create inserts a new row.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateInquiryRequest) (*Inquiry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	inq := req.inquiry(id.String(), time.Time{})
	prefs, err := json.Marshal(inq.Preferences)
	if err != nil {
		return nil, fmt.Errorf("inquiries: encode preferences: %w", err)
	}

	query := `
		INSERT INTO inquiries (id, type, full_name, email, phone_country_code, phone, guest_count,
		    meal_plan, budget, budget_type, notes, intent, experiences, preferences, resorts,
		    check_in, check_out, source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		id,
		string(inq.Type),
		inq.FullName,
		inq.Email,
		inq.PhoneCountryCode,
		inq.Phone,
		inq.GuestCount,
		inq.MealPlan,
		inq.Budget,
		inq.BudgetType,
		inq.Notes,
		inq.Intent,
		inq.Experiences,
		prefs,
		inq.Resorts,
		toPGDate(inq.CheckIn),
		toPGDate(inq.CheckOut),
		inq.Source,
	).Scan(&inq.CreatedAt); err != nil {
		return nil, fmt.Errorf("inquiries: insert failed: %w", err)
	}
	return inq, nil
}

// GetByID fetches one inquiry.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Inquiry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInquiryNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM inquiries WHERE id = $1`, id)
	inq, err := scanInquiry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("inquiries: select failed: %w", err)
	}
	return inq, nil
}

// List returns inquiries newest first.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Inquiry, error) {
	var (
		where []string
		args  []any
	)
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	query := `SELECT ` + selectColumns + ` FROM inquiries`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("inquiries: list failed: %w", err)
	}
	defer rows.Close()

	out := []*Inquiry{}
	for rows.Next() {
		inq, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("inquiries: scan failed: %w", err)
		}
		out = append(out, inq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("inquiries: list failed: %w", err)
	}
	return out, nil
}

func scanInquiry(row pgx.Row) (*Inquiry, error) {
	var (
		inq               Inquiry
		typ               string
		prefs             []byte
		checkIn, checkOut time.Time
	)
	if err := row.Scan(
		&inq.ID,
		&typ,
		&inq.FullName,
		&inq.Email,
		&inq.PhoneCountryCode,
		&inq.Phone,
		&inq.GuestCount,
		&inq.MealPlan,
		&inq.Budget,
		&inq.BudgetType,
		&inq.Notes,
		&inq.Intent,
		&inq.Experiences,
		&prefs,
		&inq.Resorts,
		&checkIn,
		&checkOut,
		&inq.Source,
		&inq.CreatedAt,
	); err != nil {
		return nil, err
	}
	inq.Type = Type(typ)
	inq.CheckIn = calendar.DateOf(checkIn)
	inq.CheckOut = calendar.DateOf(checkOut)
	inq.Preferences = map[string]string{}
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &inq.Preferences); err != nil {
			return nil, fmt.Errorf("decode preferences: %w", err)
		}
	}
	if inq.Experiences == nil {
		inq.Experiences = []string{}
	}
	if inq.Resorts == nil {
		inq.Resorts = []string{}
	}
	return &inq, nil
}

func toPGDate(d calendar.Date) pgtype.Date {
	if d.IsZero() {
		return pgtype.Date{}
	}
	return pgtype.Date{
		Time:  d.In(time.UTC),
		Valid: true,
	}
}
