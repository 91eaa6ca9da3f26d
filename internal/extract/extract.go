// Package extract turns rendered listing pages into raw candidate strings.
// It does no price or carrier interpretation; that belongs to normalize.
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Row is one opaque listing-row handle supplied by the fetch collaborator.
type Row interface {
	// Label returns the row's accessibility description, or "" when absent.
	Label() string
	// Text returns the row's rendered plain text.
	Text() string
}

// RawRow is the working pair handed to the normalizer. Label and Text stay
// separate because the primary price pattern is anchored to the label while
// the fallback pattern searches both.
type RawRow struct {
	Label string
	Text  string
}

// Combined returns the concatenated working string for patterns that search
// the whole row.
func (r RawRow) Combined() string {
	if r.Label == "" {
		return r.Text
	}
	return r.Label + " " + r.Text
}

// Collect reads every row's accessors into RawRows. Rows that expose neither
// a label nor any text carry no signal and are dropped here.
func Collect(rows []Row) []RawRow {
	out := make([]RawRow, 0, len(rows))
	for _, row := range rows {
		raw := RawRow{Label: row.Label(), Text: row.Text()}
		if raw.Label == "" && raw.Text == "" {
			continue
		}
		out = append(out, raw)
	}
	return out
}

// listingSelector matches result rows on the provider's listing page. The
// class selector covers the layout variant that renders rows as plain divs.
const listingSelector = `li[role="listitem"], .pIav2d`

var whitespaceRe = regexp.MustCompile(`\s+`)

// docRow adapts a goquery selection to the Row interface.
type docRow struct {
	sel *goquery.Selection
}

func (r docRow) Label() string {
	if label, ok := r.sel.Attr("aria-label"); ok && label != "" {
		return label
	}
	// The label often lives on a descendant rather than the row itself.
	if label, ok := r.sel.Find("[aria-label]").First().Attr("aria-label"); ok {
		return label
	}
	return ""
}

func (r docRow) Text() string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(r.sel.Text()), " ")
}

// ListingRows selects the result rows of a listing document. A missing
// listing container simply yields no rows; the caller treats that as "no
// data available" for the cycle.
func ListingRows(doc *goquery.Document) []Row {
	var rows []Row
	doc.Find(listingSelector).Each(func(_ int, sel *goquery.Selection) {
		rows = append(rows, docRow{sel: sel})
	})
	return rows
}
