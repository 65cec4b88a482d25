// Package htmldoc adapts an HTML salary table to the row interface the
// extractor consumes. It is the only package that knows about markup.
package htmldoc

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/sells-group/offer-cli/internal/salary"
)

// Selectors locates the salary table body rows and the four role-tagged
// cells within each row.
type Selectors struct {
	Rows   string
	Player string
	Amount string
	Season string
	League string
}

// DefaultSelectors matches the upstream salary dataset markup.
func DefaultSelectors() Selectors {
	return Selectors{
		Rows:   "table#salaries-table tbody tr",
		Player: ".player-name",
		Amount: ".player-salary",
		Season: ".player-year",
		League: ".player-level",
	}
}

// Rows parses the document and returns one extractor row per table body row.
func Rows(htmlText string, sel Selectors) ([]salary.Row, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, eris.Wrap(err, "htmldoc: parse document")
	}

	var rows []salary.Row
	doc.Find(sel.Rows).Each(func(_ int, s *goquery.Selection) {
		rows = append(rows, &row{node: s, sel: sel})
	})
	return rows, nil
}

type row struct {
	node *goquery.Selection
	sel  Selectors
}

// Cell returns the trimmed text of the role's cell, or "" when absent.
func (r *row) Cell(role salary.CellRole) string {
	var query string
	switch role {
	case salary.CellPlayer:
		query = r.sel.Player
	case salary.CellAmount:
		query = r.sel.Amount
	case salary.CellSeason:
		query = r.sel.Season
	case salary.CellLeague:
		query = r.sel.League
	default:
		return ""
	}
	return strings.TrimSpace(r.node.Find(query).First().Text())
}
