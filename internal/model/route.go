// Package model defines the core domain types shared across the fare
// tracking pipeline.
package model

import (
	"time"

	"github.com/rotisserie/eris"
)

// RouteTask is one configured origin/destination/date combination being
// tracked. Tasks are loaded once at startup and read-only afterwards.
type RouteTask struct {
	ID               string   `yaml:"id" json:"id"`
	RouteName        string   `yaml:"route_name" json:"route_name"`
	Origin           string   `yaml:"origin" json:"origin"`
	Dest             string   `yaml:"dest" json:"dest"`
	DepartDate       string   `yaml:"depart_date" json:"depart_date"`
	ReturnDate       string   `yaml:"return_date" json:"return_date"`
	PriorityCarriers []string `yaml:"priority_carriers" json:"priority_carriers"`
	NonstopOnly      bool     `yaml:"nonstop_only" json:"nonstop_only"`
	PriceTrigger     int      `yaml:"price_trigger" json:"price_trigger"`
	DropTriggerPct   *float64 `yaml:"drop_trigger_pct,omitempty" json:"drop_trigger_pct,omitempty"`
}

// Validate checks that a task has everything the pipeline needs.
func (t RouteTask) Validate() error {
	switch {
	case t.ID == "":
		return eris.New("route task: missing id")
	case t.Origin == "" || t.Dest == "":
		return eris.Errorf("route task %s: missing origin or dest", t.ID)
	case t.PriceTrigger <= 0:
		return eris.Errorf("route task %s: price_trigger must be positive", t.ID)
	}
	for _, d := range []string{t.DepartDate, t.ReturnDate} {
		if d == "" {
			return eris.Errorf("route task %s: missing travel date", t.ID)
		}
		if _, err := time.Parse(DateLayout, d); err != nil {
			return eris.Wrapf(err, "route task %s: bad travel date %q", t.ID, d)
		}
	}
	if len(t.PriorityCarriers) == 0 {
		return eris.Errorf("route task %s: at least one priority carrier required", t.ID)
	}
	return nil
}

// Label returns the human-facing route name, falling back to origin-dest.
func (t RouteTask) Label() string {
	if t.RouteName != "" {
		return t.RouteName
	}
	return t.Origin + "-" + t.Dest
}

// DateRange renders the travel window for report output.
func (t RouteTask) DateRange() string {
	return t.DepartDate + " to " + t.ReturnDate
}
