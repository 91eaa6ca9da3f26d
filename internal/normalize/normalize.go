// Package normalize parses raw listing rows into structured flight quotes
// and folds a cycle's quotes into one daily snapshot.
package normalize

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/farewatch/farewatch-cli/internal/extract"
	"github.com/farewatch/farewatch-cli/internal/model"
)

// priorityTier is how many of the leading priority carriers count as the
// high-preference subset for IsPriority.
const priorityTier = 2

var (
	// Ordered price fallback. dollarsRe runs against the accessibility label
	// only and always wins over a co-occurring dollarSignRe match; dollarSignRe
	// runs against the combined string.
	dollarsRe    = regexp.MustCompile(`(\d{1,4}(?:,\d{3})?)\s+US\s+dollars`)
	dollarSignRe = regexp.MustCompile(`\$(\d{1,4}(?:,\d{3})?)`)

	durationRe = regexp.MustCompile(`(\d+)\s*hr\s*(\d+)\s*min`)
)

// ParseQuote converts one raw row into a FlightQuote. ok is false when no
// price pattern matched; such rows never appear in results, so a zero fare
// can never reach the history store. ParseQuote is pure: identical input
// always yields an identical quote.
func ParseQuote(raw extract.RawRow, task model.RouteTask) (model.FlightQuote, bool) {
	price := extractPrice(raw)
	if price == 0 {
		return model.FlightQuote{}, false
	}

	carrier := matchCarrier(raw.Combined(), task.PriorityCarriers)

	return model.FlightQuote{
		Price:      price,
		Carrier:    carrier,
		Duration:   extractDuration(raw.Combined()),
		IsPriority: isPriority(carrier, task.PriorityCarriers),
	}, true
}

// extractPrice applies the ordered fallback rules; first match wins.
func extractPrice(raw extract.RawRow) int {
	if m := dollarsRe.FindStringSubmatch(raw.Label); m != nil {
		return parseAmount(m[1])
	}
	if m := dollarSignRe.FindStringSubmatch(raw.Combined()); m != nil {
		return parseAmount(m[1])
	}
	return 0
}

func parseAmount(s string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

func extractDuration(s string) string {
	if m := durationRe.FindStringSubmatch(s); m != nil {
		return m[1] + " hr " + m[2] + " min"
	}
	return model.DurationUnknown
}

// matchCarrier tests the row text against the route's priority carriers in
// list order; the first case-insensitive containment wins.
func matchCarrier(s string, carriers []string) string {
	lower := strings.ToLower(s)
	for _, carrier := range carriers {
		if strings.Contains(lower, strings.ToLower(carrier)) {
			return carrier
		}
	}
	return model.CarrierUnknown
}

// isPriority reports whether the carrier sits in the top-two preferred
// subset, not merely anywhere in the priority list.
func isPriority(carrier string, carriers []string) bool {
	tier := carriers
	if len(tier) > priorityTier {
		tier = tier[:priorityTier]
	}
	for _, c := range tier {
		if c == carrier {
			return true
		}
	}
	return false
}

// ParseAll runs ParseQuote over every raw row, dropping unparseable ones.
// Duplicate carriers across rows are expected; no row-level dedup happens.
func ParseAll(raws []extract.RawRow, task model.RouteTask) []model.FlightQuote {
	var quotes []model.FlightQuote
	for _, raw := range raws {
		if q, ok := ParseQuote(raw, task); ok {
			quotes = append(quotes, q)
		}
	}
	return quotes
}

// CheapestPerCarrier keeps the lowest-priced quote for each carrier,
// preserving the first-seen carrier order.
func CheapestPerCarrier(quotes []model.FlightQuote) []model.FlightQuote {
	best := make(map[string]model.FlightQuote)
	var order []string
	for _, q := range quotes {
		cur, seen := best[q.Carrier]
		if !seen {
			order = append(order, q.Carrier)
			best[q.Carrier] = q
			continue
		}
		if q.Price < cur.Price {
			best[q.Carrier] = q
		}
	}
	out := make([]model.FlightQuote, 0, len(order))
	for _, carrier := range order {
		out = append(out, best[carrier])
	}
	return out
}

// FoldSnapshot folds a cycle's quotes into one daily snapshot for the given
// calendar date. Quotes without a matched carrier are excluded here, so a
// snapshot always names a carrier the user registered interest in. ok is
// false when no quote survives; the caller must then skip the history write
// entirely rather than record a zero fare.
func FoldSnapshot(date string, quotes []model.FlightQuote) (model.DailySnapshot, bool) {
	var kept []model.FlightQuote
	for _, q := range quotes {
		if q.Carrier != model.CarrierUnknown && q.Price > 0 {
			kept = append(kept, q)
		}
	}
	if len(kept) == 0 {
		return model.DailySnapshot{}, false
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Price < kept[j].Price })

	var sum int
	for _, q := range kept {
		sum += q.Price
	}
	avg := math.Round(float64(sum)/float64(len(kept))*100) / 100

	return model.DailySnapshot{
		Date:      date,
		Price:     kept[0].Price,
		Carrier:   kept[0].Carrier,
		MarketAvg: avg,
	}, true
}
