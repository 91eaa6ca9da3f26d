// Package history persists the append-only per-route price time series.
package history

import (
	"context"
	"time"

	"github.com/farewatch/farewatch-cli/internal/model"
)

// Store defines the persistence interface for route price history.
type Store interface {
	// RecordSnapshot appends a daily snapshot for a route and updates the
	// cached latest pointer. Recording twice on the same calendar day
	// replaces that day's entry instead of growing the series.
	RecordSnapshot(ctx context.Context, routeID string, snap model.DailySnapshot) error

	// Latest returns the most recent snapshot for a route, or nil when the
	// route has no history yet.
	Latest(ctx context.Context, routeID string) (*model.DailySnapshot, error)

	// History returns the full oldest-first series for a route.
	History(ctx context.Context, routeID string) ([]model.DailySnapshot, error)

	// Window returns the snapshots from the last `days` calendar days. When
	// none qualify but the route has any history at all, the full series is
	// returned instead so downstream statistics always have some signal.
	Window(ctx context.Context, routeID string, days int) ([]model.DailySnapshot, error)

	// RouteIDs lists every route with recorded history.
	RouteIDs(ctx context.Context) ([]string, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Save(ctx context.Context) error
	Close() error
}

// windowSnapshots applies the shared last-N-days filter with full-series
// fallback. Snapshots with unparseable dates are treated as out of window.
func windowSnapshots(series []model.DailySnapshot, days int, now time.Time) []model.DailySnapshot {
	if len(series) == 0 {
		return nil
	}
	cutoff := now.UTC().AddDate(0, 0, -days)

	var within []model.DailySnapshot
	for _, snap := range series {
		day, err := time.Parse(model.DateLayout, snap.Date)
		if err != nil {
			continue
		}
		if !day.Before(cutoff) {
			within = append(within, snap)
		}
	}
	if len(within) == 0 {
		return series
	}
	return within
}
