package catalog

import (
	"database/sql"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Hard defaults, used when neither the remote row nor the fallback entry
// carries a value.
const (
	DefaultAtoll      = "Maldives"
	DefaultImageURL   = "/images/resorts/placeholder.jpg"
	DefaultCategory   = "Luxury Resort"
	DefaultTransfer   = "Speedboat"
	DefaultStarRating = 5
)

// DefaultMealPlans is offered when a resort lists none.
var DefaultMealPlans = []string{"Bed & Breakfast", "Half Board", "Full Board", "All Inclusive"}

// Row is a resort as stored remotely. Every column except slug may be null.
type Row struct {
	ID         string
	Slug       string
	Name       sql.NullString
	Atoll      sql.NullString
	ImageURL   sql.NullString
	Category   sql.NullString
	Transfer   sql.NullString
	StarRating sql.NullInt32
	MealPlans  []string
	Highlights []string
}

// Reconcile merges a remote row with the local fallback entry for the same
// slug. Each field takes the remote value when present, then the fallback
// value, then the hard default. fallback may be nil.
func Reconcile(row Row, fallback *Resort) Resort {
	var fb Resort
	if fallback != nil {
		fb = *fallback
	}

	out := Resort{
		ID:         first(row.ID, fb.ID, row.Slug),
		Slug:       first(row.Slug, fb.Slug),
		Name:       first(nullString(row.Name), fb.Name, titleFromSlug(row.Slug)),
		Atoll:      first(nullString(row.Atoll), fb.Atoll, DefaultAtoll),
		ImageURL:   first(nullString(row.ImageURL), fb.ImageURL, DefaultImageURL),
		Category:   first(nullString(row.Category), fb.Category, DefaultCategory),
		Transfer:   first(nullString(row.Transfer), fb.Transfer, DefaultTransfer),
		StarRating: DefaultStarRating,
		MealPlans:  firstList(row.MealPlans, fb.MealPlans, DefaultMealPlans),
		Highlights: firstList(row.Highlights, fb.Highlights, []string{}),
	}
	switch {
	case row.StarRating.Valid && row.StarRating.Int32 > 0:
		out.StarRating = int(row.StarRating.Int32)
	case fb.StarRating > 0:
		out.StarRating = fb.StarRating
	}
	return out
}

func nullString(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

func first(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func firstList(lists ...[]string) []string {
	for _, list := range lists {
		if len(list) > 0 {
			return append([]string(nil), list...)
		}
	}
	return []string{}
}

// titleFromSlug turns "six-senses-laamu" into "Six Senses Laamu".
// Casers are stateful, so each call gets its own.
func titleFromSlug(slug string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(strings.TrimSpace(slug), "-", " "))
}
