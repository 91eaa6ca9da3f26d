// Package seed injects synthetic history so the analyzer and advisor can
// be exercised before real tracking data accumulates.
package seed

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/rotisserie/eris"

	"github.com/farewatch/farewatch-cli/internal/history"
	"github.com/farewatch/farewatch-cli/internal/model"
)

// DefaultDays is how much synthetic history is generated per route.
const DefaultDays = 15

// History writes `days` consecutive daily snapshots per task, ending today.
// Prices hover around each route's trigger with bounded jitter; carriers
// rotate through the route's top-two preferred subset.
func History(ctx context.Context, store history.Store, tasks []model.RouteTask, days int, rnd *rand.Rand) error {
	if days <= 0 {
		days = DefaultDays
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	today := time.Now().UTC()
	for _, task := range tasks {
		base := task.PriceTrigger + task.PriceTrigger/8
		spread := task.PriceTrigger / 8
		if spread < 10 {
			spread = 10
		}

		carriers := task.PriorityCarriers
		if len(carriers) > 2 {
			carriers = carriers[:2]
		}

		for i := days - 1; i >= 0; i-- {
			day := today.AddDate(0, 0, -i)
			snap := model.DailySnapshot{
				Date:    day.Format(model.DateLayout),
				Price:   base + rnd.IntN(2*spread+1) - spread,
				Carrier: carriers[rnd.IntN(len(carriers))],
			}
			if err := store.RecordSnapshot(ctx, task.ID, snap); err != nil {
				return eris.Wrapf(err, "seed: record %s %s", task.ID, snap.Date)
			}
		}
	}

	return eris.Wrap(store.Save(ctx), "seed: save store")
}
