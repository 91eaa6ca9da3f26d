// Package advise turns a route's current price and statistics into one
// deterministic buy/wait recommendation.
package advise

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/farewatch/farewatch-cli/internal/model"
)

// belowAverageFactor is the discount against the rolling average that
// qualifies a price as a value buy.
const belowAverageFactor = 0.95

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a fare with thousands separators, or N/A for the
// zero sentinel.
func FormatPrice(price int) string {
	if price <= 0 {
		return "N/A"
	}
	return pricePrinter.Sprintf("$%d", price)
}

// Advise is a pure function mapping the route's current state to a verdict.
// The rules form a strict decision list; the first match wins and the order
// is load-bearing.
func Advise(label string, currentPrice, trigger int, average float64, vol model.Volatility) model.Recommendation {
	switch {
	case currentPrice == 0:
		return model.Recommendation{
			Tag:     model.VerdictDataUnavailable,
			Message: fmt.Sprintf("%s: no fare data this cycle, monitor closely", label),
		}
	case currentPrice <= trigger:
		return model.Recommendation{
			Tag: model.VerdictTargetHit,
			Message: fmt.Sprintf("%s: %s hits the %s target, book now",
				label, FormatPrice(currentPrice), FormatPrice(trigger)),
		}
	case float64(currentPrice) < average*belowAverageFactor:
		return model.Recommendation{
			Tag: model.VerdictBelowAverage,
			Message: fmt.Sprintf("%s: %s is below the %.2f rolling average, good value",
				label, FormatPrice(currentPrice), average),
		}
	case vol == model.VolatilityVolatile:
		return model.Recommendation{
			Tag:     model.VerdictVolatile,
			Message: fmt.Sprintf("%s: prices are swinging, wait for a dip", label),
		}
	default:
		return model.Recommendation{
			Tag:     model.VerdictStable,
			Message: fmt.Sprintf("%s: prices are steady, no rush to book", label),
		}
	}
}

// TrendOf compares the current price against the previous latest price.
// Either price missing or zero reads as flat.
func TrendOf(currentPrice int, previousPrice *int) model.Trend {
	if currentPrice == 0 || previousPrice == nil || *previousPrice == 0 {
		return model.TrendFlat
	}
	switch {
	case currentPrice < *previousPrice:
		return model.TrendDown
	case currentPrice > *previousPrice:
		return model.TrendUp
	default:
		return model.TrendFlat
	}
}

// DropAlert reports a warning when the price dropped at least dropPct
// percent against the previous latest price. Both prices must be real
// fares; the zero sentinel never triggers.
func DropAlert(label string, currentPrice int, previousPrice *int, dropPct *float64) (string, bool) {
	if dropPct == nil || previousPrice == nil {
		return "", false
	}
	prev := *previousPrice
	if prev <= 0 || currentPrice <= 0 {
		return "", false
	}
	drop := float64(prev-currentPrice) / float64(prev) * 100
	if drop < *dropPct {
		return "", false
	}
	return fmt.Sprintf("%s dropped %.1f%% since the last check", label, drop), true
}
