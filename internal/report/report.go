// Package report renders extraction metrics and offer results for the
// console. Everything here consumes plain data from internal/salary; the
// rendering is deliberately dumb.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/offer-cli/internal/salary"
)

const rule = "======================================================================"

var printer = message.NewPrinter(language.English)

// FormatMoney renders a decimal amount as $1,234,567.89.
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	var grouped []byte
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, byte(c))
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%s", sign, grouped, frac)
}

// WriteMetrics renders the parsing summary block.
func WriteMetrics(w io.Writer, m *salary.Metrics) {
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, "PARSING SUMMARY")
	fmt.Fprintf(w, "%s\n", rule)
	printer.Fprintf(w, "Rows scanned:                 %6d\n", m.RowsTotal)
	printer.Fprintf(w, "Rows successfully parsed:     %6d\n", m.RowsParsed)
	printer.Fprintf(w, "Rows dropped:                 %6d\n", m.RowsDropped)
	fmt.Fprintln(w, "\nIssues encountered:")
	printer.Fprintf(w, "  Invalid amounts:            %6d\n", m.BadAmounts)
	printer.Fprintf(w, "  Invalid seasons:            %6d\n", m.BadSeasons)
	printer.Fprintf(w, "  Missing league info:        %6d\n", m.MissingLeague)
	printer.Fprintf(w, "  Non-target-league records:  %6d\n", m.NonTargetLeague)
	fmt.Fprintf(w, "\nSeasons in dataset: %v\n", m.Seasons())
	fmt.Fprintf(w, "%s\n", rule)
}

// WriteOffer renders the qualifying-offer result block with a ranked
// preview of at most previewLimit earners.
func WriteOffer(w io.Writer, off *salary.Offer, previewLimit int) {
	a := off.Analysis

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, "QUALIFYING OFFER RESULT")
	fmt.Fprintf(w, "%s\n", rule)
	fmt.Fprintf(w, "\nSeason analyzed:              %d\n", off.Season)
	printer.Fprintf(w, "Players in season:            %6d\n", a.SeasonTotal)
	printer.Fprintf(w, "Top earners included:         %6d (threshold: %d)\n", a.UsedCount, a.Threshold)
	fmt.Fprintln(w, "\nSalary bounds:")
	fmt.Fprintf(w, "  Top earner:  %s\n", FormatMoney(a.Ceiling))
	fmt.Fprintf(w, "  Last place:  %s\n", FormatMoney(a.Floor))

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "QUALIFYING OFFER: %s\n", FormatMoney(off.Value))
	fmt.Fprintf(w, "%s\n", rule)

	preview := len(off.Used)
	if previewLimit > 0 && preview > previewLimit {
		preview = previewLimit
	}

	fmt.Fprintf(w, "\nTop %d Earners:\n", preview)
	fmt.Fprintln(w, strings.Repeat("-", 70))
	fmt.Fprintf(w, "%-6s %-30s %15s\n", "#", "Player", "Salary")
	fmt.Fprintln(w, strings.Repeat("-", 70))
	for i, rec := range off.Used[:preview] {
		fmt.Fprintf(w, "%-6d %-30s %15s\n", i+1, rec.Player, FormatMoney(rec.Amount))
	}
	if len(off.Used) > preview {
		fmt.Fprintf(w, "... plus %d more\n", len(off.Used)-preview)
	}
	fmt.Fprintf(w, "%s\n\n", rule)
}

// WriteCSV writes the ranked subset as CSV (rank, player, salary, season,
// league).
func WriteCSV(w io.Writer, off *salary.Offer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"rank", "player", "salary", "season", "league"}
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "report: write CSV header")
	}

	for i, rec := range off.Used {
		row := []string{
			fmt.Sprintf("%d", i+1),
			rec.Player,
			rec.Amount.StringFixed(2),
			fmt.Sprintf("%d", rec.Season),
			rec.League,
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "report: write CSV row")
		}
	}
	return nil
}
