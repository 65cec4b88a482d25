package salary

import "strings"

// CellRole identifies one of the four cells a salary table row carries.
type CellRole int

const (
	CellPlayer CellRole = iota
	CellAmount
	CellSeason
	CellLeague
)

// Row is the capability the extractor needs from a parsed document: trimmed
// text for a given cell role, or the empty string when the cell is absent.
// Any markup engine able to satisfy this contract is interchangeable.
type Row interface {
	Cell(role CellRole) string
}

// ExtractResult pairs the validated records with the data-quality metrics
// produced from the same scan.
type ExtractResult struct {
	Records []Record
	Metrics Metrics
}

// Extract walks the table rows, validates each one, and accumulates both the
// accepted records and the per-defect counters. A row is accepted iff its
// amount, season, and league are all present; the player name is descriptive
// only and may be empty. Rows in other leagues are counted informationally
// but still stored (the calculator does the actual league filtering).
// Extract never fails; malformed rows are dropped and the scan continues.
func Extract(rows []Row, targetLeague string) ExtractResult {
	res := ExtractResult{Metrics: Metrics{RowsTotal: len(rows)}}
	m := &res.Metrics

	for _, row := range rows {
		amount, amountOK := ParseAmount(row.Cell(CellAmount))
		if !amountOK {
			m.BadAmounts++
		}

		season, seasonOK := ParseSeason(row.Cell(CellSeason))
		if !seasonOK {
			m.BadSeasons++
		}

		league := row.Cell(CellLeague)
		if league == "" {
			m.MissingLeague++
		}

		// Track the season even when the row is dropped for other reasons;
		// the seasons-observed set describes the whole dataset.
		if seasonOK {
			m.markSeason(season)
		}

		if !amountOK || !seasonOK || league == "" {
			m.RowsDropped++
			continue
		}

		if !strings.EqualFold(league, targetLeague) {
			m.NonTargetLeague++
		}

		res.Records = append(res.Records, Record{
			Player: row.Cell(CellPlayer),
			Amount: amount,
			Season: season,
			League: league,
		})
		m.RowsParsed++
	}

	return res
}
