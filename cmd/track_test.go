package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farewatch/farewatch-cli/internal/model"
)

func sampleReport() model.RouteReport {
	return model.RouteReport{
		RouteID:   "sf_weekend",
		RouteName: "SEA-SFO",
		Dates:     "2026-03-27 to 2026-03-29",
		Price:     187,
		Carrier:   "Delta",
		Trend:     model.TrendDown,
		Average:   205.5,
		Verdict: model.Recommendation{
			Tag:     model.VerdictBelowAverage,
			Message: "SEA-SFO: $187 is below the 205.50 rolling average, good value",
		},
		TriggerPrice: 160,
	}
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t,
		"SEA-SFO | Delta | $187 | trend: down",
		statusLine(sampleReport()),
	)
}

func TestStatusLine_NoData(t *testing.T) {
	r := sampleReport()
	r.Price = 0
	r.Carrier = "N/A"
	r.Trend = model.TrendFlat

	assert.Equal(t, "SEA-SFO | N/A | N/A | trend: flat", statusLine(r))
}

func TestFormatReports(t *testing.T) {
	r := sampleReport()
	r.DropAlert = "SEA-SFO dropped 25.0% since the last check"

	var buf bytes.Buffer
	formatReports(&buf, []model.RouteReport{r})

	out := buf.String()
	assert.Contains(t, out, "SEA-SFO | Delta | $187")
	assert.Contains(t, out, "below the 205.50 rolling average")
	assert.Contains(t, out, "ALERT: SEA-SFO dropped 25.0%")
}
