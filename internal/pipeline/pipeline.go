// Package pipeline runs the per-route tracking cycle: fetch, extract,
// normalize, record, analyze, advise.
package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/farewatch/farewatch-cli/internal/advise"
	"github.com/farewatch/farewatch-cli/internal/analyze"
	"github.com/farewatch/farewatch-cli/internal/config"
	"github.com/farewatch/farewatch-cli/internal/extract"
	"github.com/farewatch/farewatch-cli/internal/fetch"
	"github.com/farewatch/farewatch-cli/internal/history"
	"github.com/farewatch/farewatch-cli/internal/model"
	"github.com/farewatch/farewatch-cli/internal/normalize"
)

// carrierNone is reported when a cycle produced no usable quotes.
const carrierNone = "N/A"

// Tracker executes tracking cycles. Routes are processed strictly
// sequentially; one route's failure never aborts the run.
type Tracker struct {
	fetcher  fetch.Fetcher
	store    history.Store
	analyzer *analyze.Analyzer
	now      func() time.Time
}

// New creates a Tracker.
func New(cfg config.TrackConfig, fetcher fetch.Fetcher, store history.Store) *Tracker {
	return &Tracker{
		fetcher:  fetcher,
		store:    store,
		analyzer: analyze.New(store, cfg.WindowDays, cfg.VolatilityThreshold),
		now:      time.Now,
	}
}

// Run processes every task in order and saves the store once at the end.
// The returned reports feed downstream rendering.
func (t *Tracker) Run(ctx context.Context, tasks []model.RouteTask) ([]model.RouteReport, error) {
	reports := make([]model.RouteReport, 0, len(tasks))
	for _, task := range tasks {
		reports = append(reports, t.runTask(ctx, task))
	}
	if err := t.store.Save(ctx); err != nil {
		return reports, err
	}
	return reports, nil
}

func (t *Tracker) runTask(ctx context.Context, task model.RouteTask) model.RouteReport {
	today := t.now().UTC().Format(model.DateLayout)
	label := task.Label()

	// Latest before this cycle's write; feeds trend and drop alerting.
	var prevPrice *int
	if prev, err := t.store.Latest(ctx, task.ID); err != nil {
		zap.L().Warn("previous snapshot unavailable",
			zap.String("route", task.ID),
			zap.Error(err),
		)
	} else if prev != nil {
		prevPrice = &prev.Price
	}

	quotes := t.collectQuotes(ctx, task)
	folded := normalize.CheapestPerCarrier(quotes)

	currentPrice := 0
	carrier := carrierNone
	if snap, ok := normalize.FoldSnapshot(today, folded); ok {
		currentPrice = snap.Price
		carrier = snap.Carrier
		if err := t.store.RecordSnapshot(ctx, task.ID, snap); err != nil {
			zap.L().Error("record snapshot failed",
				zap.String("route", task.ID),
				zap.Error(err),
			)
		}
	} else {
		// Zero valid quotes: the cycle is a no-op for history purposes.
		zap.L().Warn("no usable quotes this cycle",
			zap.String("route", task.ID),
			zap.Int("raw_quotes", len(quotes)),
		)
	}

	stats, err := t.analyzer.Compute(ctx, task.ID)
	if err != nil {
		zap.L().Warn("stats unavailable",
			zap.String("route", task.ID),
			zap.Error(err),
		)
		stats = analyze.Stats{Volatility: model.VolatilityStable}
	}

	report := model.RouteReport{
		RouteID:      task.ID,
		RouteName:    label,
		Dates:        task.DateRange(),
		Price:        currentPrice,
		Carrier:      carrier,
		Trend:        advise.TrendOf(currentPrice, prevPrice),
		Average:      stats.Average,
		Volatility:   stats.Volatility,
		Verdict:      advise.Advise(label, currentPrice, task.PriceTrigger, stats.Average, stats.Volatility),
		Quotes:       folded,
		TriggerPrice: task.PriceTrigger,
	}
	if alert, ok := advise.DropAlert(label, currentPrice, prevPrice, task.DropTriggerPct); ok {
		report.DropAlert = alert
		zap.L().Info("drop trigger fired",
			zap.String("route", task.ID),
			zap.String("alert", alert),
		)
	}

	zap.L().Info("route tracked",
		zap.String("route", task.ID),
		zap.Int("price", currentPrice),
		zap.String("carrier", carrier),
		zap.String("verdict", string(report.Verdict.Tag)),
	)
	return report
}

// collectQuotes fetches and parses a task's listing rows. A fetch failure
// degrades to no quotes for this cycle; it never propagates.
func (t *Tracker) collectQuotes(ctx context.Context, task model.RouteTask) []model.FlightQuote {
	rows, err := t.fetcher.FetchRows(ctx, task)
	if err != nil {
		zap.L().Warn("listing fetch failed",
			zap.String("route", task.ID),
			zap.Error(err),
		)
		return nil
	}
	return normalize.ParseAll(extract.Collect(rows), task)
}
