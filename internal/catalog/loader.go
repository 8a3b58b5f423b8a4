package catalog

import (
	"context"

	"github.com/wolfman30/maldives-travel-platform/pkg/logging"
)

// RowSource lists remote resort rows.
type RowSource interface {
	ListRows(ctx context.Context) ([]Row, error)
}

// Load builds the catalog from the remote rows reconciled against the
// fallback list. Fallback resorts missing remotely are appended after the
// remote ones. When src is nil, fails, or returns nothing, the fallback list
// is used as-is.
func Load(ctx context.Context, src RowSource, fallback []Resort, logger *logging.Logger) *Catalog {
	if logger == nil {
		logger = logging.Default()
	}
	if src == nil {
		return New(fallback)
	}

	rows, err := src.ListRows(ctx)
	if err != nil {
		logger.Warn("resort catalog unavailable, using fallback", "error", err, "fallback_count", len(fallback))
		return New(fallback)
	}
	if len(rows) == 0 {
		logger.Info("resort catalog empty, using fallback", "fallback_count", len(fallback))
		return New(fallback)
	}

	bySlug := make(map[string]*Resort, len(fallback))
	for i := range fallback {
		bySlug[fallback[i].Slug] = &fallback[i]
	}

	merged := make([]Resort, 0, len(rows)+len(fallback))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if row.Slug == "" {
			continue
		}
		merged = append(merged, Reconcile(row, bySlug[row.Slug]))
		seen[row.Slug] = struct{}{}
	}
	for _, fb := range fallback {
		if _, ok := seen[fb.Slug]; !ok {
			merged = append(merged, fb)
		}
	}

	logger.Info("resort catalog loaded", "remote_count", len(rows), "total", len(merged))
	return New(merged)
}
