package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/offer-cli/internal/config"
	"github.com/sells-group/offer-cli/internal/fetcher"
	"github.com/sells-group/offer-cli/internal/report"
	"github.com/sells-group/offer-cli/internal/salary"
	"github.com/sells-group/offer-cli/internal/salary/htmldoc"
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute the qualifying offer from the salary dataset",
	Long: `Fetch the salary dataset, extract validated records, and compute the
qualifying offer: the average salary of the top earners in the most
recent season of the target league, rounded to cents.

Examples:
  # Fetch the configured endpoint and compute with defaults (MLB, top 125)
  compute

  # Compute from a saved snapshot
  compute --file data.html

  # Different league and threshold, ranked subset as CSV
  compute --league AAA --threshold 50 --format csv --output ranked.csv`,
	RunE: runCompute,
}

func init() {
	f := computeCmd.Flags()
	f.String("endpoint", "", "salary dataset URL (overrides config)")
	f.String("file", "", "read markup from a local file instead of fetching")
	f.String("league", "", "target league code (overrides config)")
	f.Int("threshold", 0, "top-earner count to average (overrides config)")
	f.String("format", "table", "output format: table or csv")
	f.String("output", "", "output file path (default: stdout)")
	f.Int("top", 10, "earners to preview in table output")
	rootCmd.AddCommand(computeCmd)
}

func runCompute(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := zap.L().With(zap.String("command", "compute"))

	file, _ := cmd.Flags().GetString("file")
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	previewLimit, _ := cmd.Flags().GetInt("top")

	if format != "table" && format != "csv" {
		return eris.Errorf("compute: --format must be table or csv (got %q)", format)
	}

	endpoint := cfg.Source.Endpoint
	if v, _ := cmd.Flags().GetString("endpoint"); v != "" {
		endpoint = v
	}
	league := cfg.Offer.League
	if v, _ := cmd.Flags().GetString("league"); v != "" {
		league = v
	}
	threshold := cfg.Offer.Threshold
	if v, _ := cmd.Flags().GetInt("threshold"); v > 0 {
		threshold = v
	}

	htmlText, err := loadMarkup(ctx, file, endpoint)
	if err != nil {
		return err
	}

	rows, err := htmldoc.Rows(htmlText, selectorsFromConfig(cfg.Source.Selectors))
	if err != nil {
		return eris.Wrap(err, "compute: parse markup")
	}

	res := salary.Extract(rows, league)
	log.Info("extraction complete",
		zap.Int("rows_total", res.Metrics.RowsTotal),
		zap.Int("rows_parsed", res.Metrics.RowsParsed),
		zap.Int("rows_dropped", res.Metrics.RowsDropped),
	)

	report.WriteMetrics(os.Stdout, &res.Metrics)

	if len(res.Records) == 0 {
		return eris.New("compute: no valid records parsed")
	}

	off, err := salary.ComputeOffer(res.Records, league, threshold)
	if err != nil {
		return err
	}

	log.Info("offer computed",
		zap.Int("season", off.Season),
		zap.String("offer", off.Value.StringFixed(2)),
		zap.Int("used_count", off.Analysis.UsedCount),
	)

	switch format {
	case "csv":
		w := os.Stdout
		if outputPath != "" {
			w, err = os.Create(outputPath)
			if err != nil {
				return eris.Wrapf(err, "compute: create output file %s", outputPath)
			}
			defer w.Close() //nolint:errcheck
		}
		return report.WriteCSV(w, off)
	default:
		report.WriteOffer(os.Stdout, off, previewLimit)
	}

	return nil
}

// loadMarkup reads the raw markup from a local file when given, otherwise
// fetches the endpoint.
func loadMarkup(ctx context.Context, file, endpoint string) (string, error) {
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", eris.Wrapf(err, "read markup file %s", file)
		}
		return string(b), nil
	}

	f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:  cfg.Source.UserAgent,
		Timeout:    time.Duration(cfg.Source.TimeoutSecs) * time.Second,
		MaxRetries: cfg.Source.MaxRetries,
		RatePerSec: cfg.Source.RatePerSec,
	})
	return f.Fetch(ctx, endpoint)
}

func selectorsFromConfig(sc config.SelectorConfig) htmldoc.Selectors {
	sel := htmldoc.DefaultSelectors()
	if sc.Rows != "" {
		sel.Rows = sc.Rows
	}
	if sc.Player != "" {
		sel.Player = sc.Player
	}
	if sc.Amount != "" {
		sel.Amount = sc.Amount
	}
	if sc.Season != "" {
		sel.Season = sc.Season
	}
	if sc.League != "" {
		sel.League = sc.League
	}
	return sel
}
