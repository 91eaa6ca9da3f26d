// Package export writes a route's price history to CSV or XLSX files.
package export

import (
	"io"

	"github.com/jszwec/csvutil"
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/farewatch/farewatch-cli/internal/model"
)

// Record is one exported history row.
type Record struct {
	RouteID   string  `csv:"route_id"`
	Date      string  `csv:"date"`
	Price     int     `csv:"price"`
	Carrier   string  `csv:"carrier"`
	MarketAvg float64 `csv:"market_avg"`
}

// Records flattens a route's snapshot series into export rows.
func Records(routeID string, series []model.DailySnapshot) []Record {
	recs := make([]Record, 0, len(series))
	for _, snap := range series {
		recs = append(recs, Record{
			RouteID:   routeID,
			Date:      snap.Date,
			Price:     snap.Price,
			Carrier:   snap.Carrier,
			MarketAvg: snap.MarketAvg,
		})
	}
	return recs
}

// WriteCSV writes records as headered CSV.
func WriteCSV(w io.Writer, recs []Record) error {
	data, err := csvutil.Marshal(recs)
	if err != nil {
		return eris.Wrap(err, "export: marshal csv")
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "export: write csv")
	}
	return nil
}

// WriteXLSX writes records to a single-sheet workbook at path.
func WriteXLSX(path string, recs []Record) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("history")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, h := range []string{"route_id", "date", "price", "carrier", "market_avg"} {
		header.AddCell().SetString(h)
	}
	for _, rec := range recs {
		row := sheet.AddRow()
		row.AddCell().SetString(rec.RouteID)
		row.AddCell().SetString(rec.Date)
		row.AddCell().SetInt(rec.Price)
		row.AddCell().SetString(rec.Carrier)
		row.AddCell().SetFloatWithFormat(rec.MarketAvg, "0.00")
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}
