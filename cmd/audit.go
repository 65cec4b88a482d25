package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/offer-cli/internal/report"
	"github.com/sells-group/offer-cli/internal/salary"
	"github.com/sells-group/offer-cli/internal/salary/htmldoc"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit dataset quality without computing an offer",
	Long: `Run extraction only and print the parse-metrics summary: row counts,
per-defect counters, and the seasons present in the dataset. Useful for
checking upstream data quality before trusting a computed offer.`,
	RunE: runAudit,
}

func init() {
	f := auditCmd.Flags()
	f.String("endpoint", "", "salary dataset URL (overrides config)")
	f.String("file", "", "read markup from a local file instead of fetching")
	f.String("league", "", "target league code (overrides config)")
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := zap.L().With(zap.String("command", "audit"))

	file, _ := cmd.Flags().GetString("file")
	endpoint := cfg.Source.Endpoint
	if v, _ := cmd.Flags().GetString("endpoint"); v != "" {
		endpoint = v
	}
	league := cfg.Offer.League
	if v, _ := cmd.Flags().GetString("league"); v != "" {
		league = v
	}

	htmlText, err := loadMarkup(ctx, file, endpoint)
	if err != nil {
		return err
	}

	rows, err := htmldoc.Rows(htmlText, selectorsFromConfig(cfg.Source.Selectors))
	if err != nil {
		return eris.Wrap(err, "audit: parse markup")
	}

	res := salary.Extract(rows, league)
	log.Info("audit complete",
		zap.Int("rows_total", res.Metrics.RowsTotal),
		zap.Int("rows_parsed", res.Metrics.RowsParsed),
		zap.Ints("seasons", res.Metrics.Seasons()),
	)

	report.WriteMetrics(os.Stdout, &res.Metrics)
	return nil
}
