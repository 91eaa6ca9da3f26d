// Package analyze computes rolling statistics over a route's price history.
package analyze

import (
	"context"
	"math"

	"github.com/farewatch/farewatch-cli/internal/history"
	"github.com/farewatch/farewatch-cli/internal/model"
)

// DefaultWindowDays is the rolling-average window.
const DefaultWindowDays = 7

// DefaultVolatilityThreshold is the standard deviation (in currency units)
// above which a route counts as volatile.
const DefaultVolatilityThreshold = 50.0

// Stats is the analyzer's output for one route.
type Stats struct {
	// Average is the arithmetic mean of the rolling window, rounded to two
	// decimal places. Zero when the route has no valid history.
	Average float64 `json:"average"`
	// Volatility classifies the whole valid history, not just the window.
	Volatility model.Volatility `json:"volatility"`
}

// Analyzer derives Stats from the history store.
type Analyzer struct {
	store      store
	windowDays int
	threshold  float64
}

// store is the slice of history.Store the analyzer needs.
type store interface {
	History(ctx context.Context, routeID string) ([]model.DailySnapshot, error)
	Window(ctx context.Context, routeID string, days int) ([]model.DailySnapshot, error)
}

var _ store = history.Store(nil)

// New creates an Analyzer. Non-positive parameters fall back to defaults.
func New(st store, windowDays int, threshold float64) *Analyzer {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	if threshold <= 0 {
		threshold = DefaultVolatilityThreshold
	}
	return &Analyzer{store: st, windowDays: windowDays, threshold: threshold}
}

// Compute returns the rolling average and volatility for one route.
// Zero-price snapshots (failed fetch days) are excluded before any math;
// absence of data reports as Stable, never as volatility.
func (a *Analyzer) Compute(ctx context.Context, routeID string) (Stats, error) {
	full, err := a.store.History(ctx, routeID)
	if err != nil {
		return Stats{}, err
	}
	if len(validPrices(full)) == 0 {
		return Stats{Volatility: model.VolatilityStable}, nil
	}

	windowed, err := a.store.Window(ctx, routeID, a.windowDays)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Average:    round2(mean(validPrices(windowed))),
		Volatility: model.VolatilityStable,
	}
	if stdDev(validPrices(full)) > a.threshold {
		stats.Volatility = model.VolatilityVolatile
	}
	return stats, nil
}

func validPrices(series []model.DailySnapshot) []float64 {
	var prices []float64
	for _, snap := range series {
		if snap.Price > 0 {
			prices = append(prices, float64(snap.Price))
		}
	}
	return prices
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdDev is the population standard deviation.
func stdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	var sq float64
	for _, x := range xs {
		sq += (x - m) * (x - m)
	}
	return math.Sqrt(sq / float64(len(xs)))
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
