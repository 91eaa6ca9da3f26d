package advise

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/farewatch/farewatch-cli/internal/model"
)

func TestAdvise_DecisionOrder(t *testing.T) {
	tests := []struct {
		name    string
		price   int
		trigger int
		average float64
		vol     model.Volatility
		want    model.VerdictTag
	}{
		{
			name:  "zero price wins over everything",
			price: 0, trigger: 160, average: 200, vol: model.VolatilityVolatile,
			want: model.VerdictDataUnavailable,
		},
		{
			name:  "target hit",
			price: 150, trigger: 160, average: 200,
			want: model.VerdictTargetHit,
		},
		{
			name:  "target hit at exact trigger",
			price: 160, trigger: 160, average: 200,
			want: model.VerdictTargetHit,
		},
		{
			name:  "below average",
			price: 170, trigger: 160, average: 200,
			want: model.VerdictBelowAverage,
		},
		{
			name:  "volatile",
			price: 195, trigger: 160, average: 200, vol: model.VolatilityVolatile,
			want: model.VerdictVolatile,
		},
		{
			name:  "stable fallthrough",
			price: 195, trigger: 160, average: 200, vol: model.VolatilityStable,
			want: model.VerdictStable,
		},
		{
			name:  "just above the 0.95 line is not below average",
			price: 190, trigger: 160, average: 200, vol: model.VolatilityStable,
			want: model.VerdictStable,
		},
		{
			name:  "target hit wins over below average",
			price: 150, trigger: 160, average: 500,
			want: model.VerdictTargetHit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vol := tt.vol
			if vol == "" {
				vol = model.VolatilityStable
			}
			got := Advise("SEA-SFO", tt.price, tt.trigger, tt.average, vol)
			assert.Equal(t, tt.want, got.Tag)
			assert.Contains(t, got.Message, "SEA-SFO")
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$187", FormatPrice(187))
	assert.Equal(t, "$1,234", FormatPrice(1234))
	assert.Equal(t, "N/A", FormatPrice(0))
}

func TestTrendOf(t *testing.T) {
	prev := func(p int) *int { return &p }

	assert.Equal(t, model.TrendFlat, TrendOf(100, nil))
	assert.Equal(t, model.TrendFlat, TrendOf(100, prev(0)))
	assert.Equal(t, model.TrendFlat, TrendOf(0, prev(150)))
	assert.Equal(t, model.TrendDown, TrendOf(100, prev(150)))
	assert.Equal(t, model.TrendUp, TrendOf(200, prev(150)))
	assert.Equal(t, model.TrendFlat, TrendOf(150, prev(150)))
}

func TestDropAlert(t *testing.T) {
	pct := func(p float64) *float64 { return &p }
	prev := func(p int) *int { return &p }

	msg, ok := DropAlert("SEA-PSP", 300, prev(400), pct(20))
	assert.True(t, ok)
	assert.Contains(t, msg, "25.0%")

	_, ok = DropAlert("SEA-PSP", 350, prev(400), pct(20))
	assert.False(t, ok, "12.5%% drop is under the 20%% trigger")

	_, ok = DropAlert("SEA-PSP", 300, prev(400), nil)
	assert.False(t, ok, "no trigger configured")

	_, ok = DropAlert("SEA-PSP", 300, nil, pct(20))
	assert.False(t, ok, "no previous price")

	_, ok = DropAlert("SEA-PSP", 0, prev(400), pct(20))
	assert.False(t, ok, "zero sentinel never triggers")

	_, ok = DropAlert("SEA-PSP", 300, prev(0), pct(20))
	assert.False(t, ok)
}
