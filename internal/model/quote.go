package model

// DateLayout is the calendar-day format used throughout the history store.
const DateLayout = "2006-01-02"

// CarrierUnknown marks a quote whose carrier matched none of the route's
// priority carriers.
const CarrierUnknown = "Unknown"

// DurationUnknown marks a quote with no recognizable duration text.
const DurationUnknown = "unknown"

// FlightQuote is one parsed candidate fare extracted from a single listing
// row. A zero Price never appears here: rows without a recognizable price
// are dropped by the normalizer instead of being recorded as free flights.
type FlightQuote struct {
	Price      int    `json:"price"`
	Carrier    string `json:"carrier"`
	Duration   string `json:"duration"`
	IsPriority bool   `json:"is_priority"`
}

// DailySnapshot is the best (and optionally market-average) price recorded
// for a route on one calendar day.
type DailySnapshot struct {
	Date      string  `json:"date"`
	Price     int     `json:"price"`
	Carrier   string  `json:"carrier"`
	MarketAvg float64 `json:"market_avg,omitempty"`
}

// RouteHistory is the append-only, oldest-first series of snapshots for one
// route, plus a cached copy of the most recent snapshot. The on-disk JSON
// shape matches this struct exactly and must round-trip losslessly.
type RouteHistory struct {
	Latest  DailySnapshot   `json:"latest"`
	History []DailySnapshot `json:"history"`
}
