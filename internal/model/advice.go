package model

// Volatility is the coarse classification of a route's price movement.
type Volatility string

const (
	VolatilityStable   Volatility = "Stable"
	VolatilityVolatile Volatility = "Volatile"
)

// VerdictTag identifies which advisory rule fired for a route.
type VerdictTag string

const (
	VerdictDataUnavailable VerdictTag = "data_unavailable"
	VerdictTargetHit       VerdictTag = "target_hit"
	VerdictBelowAverage    VerdictTag = "below_average"
	VerdictVolatile        VerdictTag = "volatile"
	VerdictStable          VerdictTag = "stable"
)

// Recommendation is the advisory derived fresh each run from the current
// snapshot and the route's history. Never persisted.
type Recommendation struct {
	Tag     VerdictTag `json:"tag"`
	Message string     `json:"message"`
}

// Trend compares the current price to the previous latest snapshot.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// RouteReport is the per-route record handed to downstream reporting after
// a tracking cycle. Rendering it is out of scope for the pipeline itself.
type RouteReport struct {
	RouteID      string         `json:"route_id"`
	RouteName    string         `json:"route_name"`
	Dates        string         `json:"dates"`
	Price        int            `json:"price"`
	Carrier      string         `json:"carrier"`
	Trend        Trend          `json:"trend"`
	Average      float64        `json:"average"`
	Volatility   Volatility     `json:"volatility"`
	Verdict      Recommendation `json:"verdict"`
	DropAlert    string         `json:"drop_alert,omitempty"`
	Quotes       []FlightQuote  `json:"quotes,omitempty"`
	TriggerPrice int            `json:"trigger_price"`
}
