package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Store reads and writes the resorts table.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListRows returns every stored resort row ordered by name. Nullable columns
// are left for Reconcile to fill.
func (s *Store) ListRows(ctx context.Context) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, slug, name, atoll, image_url, category, transfer, star_rating, meal_plans, highlights
		FROM resorts ORDER BY name ASC, slug ASC`)
	if err != nil {
		return nil, fmt.Errorf("catalog: list resorts: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.ID, &r.Slug, &r.Name, &r.Atoll, &r.ImageURL, &r.Category,
			&r.Transfer, &r.StarRating, pq.Array(&r.MealPlans), pq.Array(&r.Highlights)); err != nil {
			return nil, fmt.Errorf("catalog: scan resort: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: iterate resorts: %w", err)
	}
	return out, nil
}

// Upsert writes a resort keyed by slug.
func (s *Store) Upsert(ctx context.Context, r Resort) error {
	if err := r.Validate(); err != nil {
		return err
	}
	id := r.ID
	if id == "" {
		id = r.Slug
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO resorts (id, slug, name, atoll, image_url, category, transfer, star_rating,
		    meal_plans, highlights, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (slug) DO UPDATE SET
		    name=EXCLUDED.name, atoll=EXCLUDED.atoll, image_url=EXCLUDED.image_url,
		    category=EXCLUDED.category, transfer=EXCLUDED.transfer, star_rating=EXCLUDED.star_rating,
		    meal_plans=EXCLUDED.meal_plans, highlights=EXCLUDED.highlights, updated_at=EXCLUDED.updated_at`,
		id, r.Slug, r.Name, nullable(r.Atoll), nullable(r.ImageURL), nullable(r.Category),
		nullable(r.Transfer), r.StarRating, pq.Array(r.MealPlans), pq.Array(r.Highlights), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("catalog: upsert %s: %w", r.Slug, err)
	}
	return nil
}

func nullable(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
