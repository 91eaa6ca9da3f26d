package export

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/farewatch/farewatch-cli/internal/model"
)

func sampleSeries() []model.DailySnapshot {
	return []model.DailySnapshot{
		{Date: "2026-02-01", Price: 187, Carrier: "Delta", MarketAvg: 205.5},
		{Date: "2026-02-02", Price: 192, Carrier: "Alaska"},
	}
}

func TestRecords(t *testing.T) {
	recs := Records("sf_weekend", sampleSeries())

	require.Len(t, recs, 2)
	assert.Equal(t, Record{
		RouteID: "sf_weekend", Date: "2026-02-01", Price: 187,
		Carrier: "Delta", MarketAvg: 205.5,
	}, recs[0])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, Records("sf_weekend", sampleSeries()))

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "route_id,date,price,carrier,market_avg")
	assert.Contains(t, out, "sf_weekend,2026-02-01,187,Delta,205.5")
	assert.Contains(t, out, "sf_weekend,2026-02-02,192,Alaska,0")
}

func TestWriteXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.xlsx")
	require.NoError(t, WriteXLSX(path, Records("sf_weekend", sampleSeries())))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	sheet := f.Sheets[0]
	assert.Equal(t, "history", sheet.Name)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "route_id", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "2026-02-01", sheet.Rows[1].Cells[1].String())
	assert.Equal(t, "Delta", sheet.Rows[1].Cells[3].String())
}
