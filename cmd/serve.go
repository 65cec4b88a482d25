package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/offer-cli/internal/config"
	"github.com/sells-group/offer-cli/internal/fetcher"
	"github.com/sells-group/offer-cli/internal/salary"
	"github.com/sells-group/offer-cli/internal/salary/htmldoc"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API for offer computations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:  cfg.Source.UserAgent,
			Timeout:    time.Duration(cfg.Source.TimeoutSecs) * time.Second,
			MaxRetries: cfg.Source.MaxRetries,
			RatePerSec: cfg.Source.RatePerSec,
		})
		api := newOfferAPI(cfg, f)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: api.routes(),
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			zap.L().Info("starting server", zap.Int("port", port))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return eris.Wrap(err, "server listen")
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// offerAPI bundles the dependencies the HTTP handlers need.
type offerAPI struct {
	cfg   *config.Config
	fetch fetcher.Fetcher
}

func newOfferAPI(cfg *config.Config, fetch fetcher.Fetcher) *offerAPI {
	return &offerAPI{cfg: cfg, fetch: fetch}
}

func (a *offerAPI) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.Get("/health", a.handleHealth)
	r.Post("/offer", a.handleOffer)
	return r
}

func (a *offerAPI) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type offerRequest struct {
	Endpoint  string `json:"endpoint,omitempty"`
	League    string `json:"league,omitempty"`
	Threshold int    `json:"threshold,omitempty"`
}

type offerResponse struct {
	RunID    string          `json:"run_id"`
	Season   int             `json:"season"`
	Value    string          `json:"value"`
	Analysis salary.Analysis `json:"analysis"`
	Metrics  salary.Metrics  `json:"metrics"`
	Seasons  []int           `json:"seasons"`
}

func (a *offerAPI) handleOffer(w http.ResponseWriter, r *http.Request) {
	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))

	var req offerRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
	}

	endpoint := a.cfg.Source.Endpoint
	if req.Endpoint != "" {
		endpoint = req.Endpoint
	}
	league := a.cfg.Offer.League
	if req.League != "" {
		league = req.League
	}
	threshold := a.cfg.Offer.Threshold
	if req.Threshold > 0 {
		threshold = req.Threshold
	}

	htmlText, err := a.fetch.Fetch(r.Context(), endpoint)
	if err != nil {
		log.Error("upstream fetch failed", zap.String("endpoint", endpoint), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "upstream fetch failed"})
		return
	}

	rows, err := htmldoc.Rows(htmlText, selectorsFromConfig(a.cfg.Source.Selectors))
	if err != nil {
		log.Error("markup parse failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "markup parse failed"})
		return
	}

	res := salary.Extract(rows, league)

	off, err := salary.ComputeOffer(res.Records, league, threshold)
	if err != nil {
		var nde *salary.NoDataError
		if errors.As(err, &nde) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": nde.Reason})
			return
		}
		log.Error("offer computation failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "offer computation failed"})
		return
	}

	log.Info("offer computed",
		zap.String("league", league),
		zap.Int("season", off.Season),
		zap.String("value", off.Value.StringFixed(2)),
	)

	writeJSON(w, http.StatusOK, offerResponse{
		RunID:    runID,
		Season:   off.Season,
		Value:    off.Value.StringFixed(2),
		Analysis: off.Analysis,
		Metrics:  res.Metrics,
		Seasons:  res.Metrics.Seasons(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
