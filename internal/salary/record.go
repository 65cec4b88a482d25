package salary

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Record is one validated salary entry. Records are created only by Extract
// after every field passes validation and are never mutated afterwards.
type Record struct {
	Player string          `json:"player"`
	Amount decimal.Decimal `json:"amount"`
	Season int             `json:"season"`
	League string          `json:"league"`
}

// Metrics accumulates data-quality counters for a single extraction run.
// A row can carry more than one defect; each defect counter moves
// independently. RowsParsed + RowsDropped always equals RowsTotal.
type Metrics struct {
	RowsTotal       int `json:"rows_total"`
	RowsParsed      int `json:"rows_parsed"`
	RowsDropped     int `json:"rows_dropped"`
	BadAmounts      int `json:"bad_amounts"`
	BadSeasons      int `json:"bad_seasons"`
	MissingLeague   int `json:"missing_league"`
	NonTargetLeague int `json:"non_target_league"`

	seasonsSeen map[int]struct{}
}

func (m *Metrics) markSeason(year int) {
	if m.seasonsSeen == nil {
		m.seasonsSeen = make(map[int]struct{})
	}
	m.seasonsSeen[year] = struct{}{}
}

// Seasons returns every distinct season observed during the run, sorted
// ascending. Seasons from dropped rows are included as long as the season
// cell itself was parseable.
func (m *Metrics) Seasons() []int {
	out := make([]int, 0, len(m.seasonsSeen))
	for yr := range m.seasonsSeen {
		out = append(out, yr)
	}
	sort.Ints(out)
	return out
}
