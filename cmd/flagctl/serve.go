package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	featureflags "github.com/easytrade/featureflags-go"
	"github.com/easytrade/featureflags-go/problempattern"
	"github.com/easytrade/featureflags-go/redisstore"
)

const shutdownTimeout = 10 * time.Second

var (
	serveAddr      string
	serveStore     string
	serveBaseURL   string
	serveFlagsFile string
	serveDelay     time.Duration
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Run the demo service",
	Long: `Run a demo HTTP service exposing the catalog and a ping endpoint guarded by the
problem pattern middlewares.

Stores:
  memory   flag state seeded from the catalog (default)
  service  the feature flag service at --base-url
  redis    Redis hashes, configured with REDIS_* variables and seeded from the catalog
  file     a JSON list of records read from --flags-file`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveStore, "store", "memory", "Flag store: memory, service, redis or file")
	serveCmd.Flags().StringVar(&serveBaseURL, "base-url", featureflags.DefaultBaseURL, "Feature flag service URL for --store service")
	serveCmd.Flags().StringVar(&serveFlagsFile, "flags-file", "flags.json", "Records file for --store file")
	serveCmd.Flags().DurationVar(&serveDelay, "delay", problempattern.DefaultDelay, "Delay added while delay_simulation is enabled")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := slog.Default().With(slog.String("component", "flagctl"))

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, reg.Catalog(), log)
	if err != nil {
		return err
	}
	defer closeStore()

	metrics := prometheus.NewRegistry()
	metrics.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	provider := featureflags.NewProvider(store,
		featureflags.WithProviderLogger(log),
		featureflags.WithMetrics(metrics),
	)

	srv := &http.Server{
		Addr:              serveAddr,
		Handler:           newRouter(reg, provider, metrics, serveDelay, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", slog.String("addr", serveAddr), slog.String("store", serveStore))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// openStore builds the store selected by --store. The returned func releases it.
func openStore(ctx context.Context, c *featureflags.Catalog, log *slog.Logger) (featureflags.FlagStore, func(), error) {
	noop := func() {}

	switch serveStore {
	case "memory":
		return featureflags.NewMemoryStoreFromCatalog(c), noop, nil
	case "service":
		return featureflags.NewClient(
			featureflags.WithBaseURL(serveBaseURL),
			featureflags.WithLogger(log),
		), noop, nil
	case "file":
		s, err := featureflags.ReadFlagsFromFile(serveFlagsFile)
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil
	case "redis":
		cfg, err := redisstore.LoadConfig()
		if err != nil {
			return nil, nil, err
		}
		client, err := redisstore.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		s := redisstore.New(client, redisstore.WithKeyPrefix(cfg.KeyPrefix), redisstore.WithLogger(log))
		if err := s.Seed(ctx, c); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("seeding redis: %w", err)
		}
		return s, func() { _ = client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", serveStore)
	}
}

// flagResponse mirrors a record of the feature flag service.
type flagResponse struct {
	ID          string `json:"id"`
	Enabled     bool   `json:"enabled"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newRouter(reg *featureflags.Registry, provider *featureflags.Provider, gatherer prometheus.Gatherer, delay time.Duration, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/v1/flags/grouped", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, reg.Catalog(), log)
	})
	r.Get("/v1/flags/{key}", func(w http.ResponseWriter, req *http.Request) {
		f, ok := reg.Catalog().Lookup(chi.URLParam(req, "key"))
		if !ok {
			http.NotFound(w, req)
			return
		}
		writeJSON(w, http.StatusOK, flagResponse{
			ID:          f.Key,
			Enabled:     f.Enabled,
			Name:        f.DisplayName,
			Description: f.Description,
		}, log)
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(problempattern.TimeoutError(provider, log))
		r.Use(problempattern.DelaySimulation(provider, delay, log))
		r.Get("/ping", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, log)
		})
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("writing response", slog.Any("error", err))
	}
}
