// Command pointchartd serves point chart pricing over HTTP.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/pointchart/internal/adapters/http/api"
	"github.com/okian/pointchart/internal/adapters/http/swagger"
	"github.com/okian/pointchart/internal/adapters/repository"
	service "github.com/okian/pointchart/internal/app"
	"github.com/okian/pointchart/internal/config"
	"github.com/okian/pointchart/pkg/logger"
	"github.com/okian/pointchart/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		os.Stderr.WriteString("pointchartd: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Named("pointchartd")
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	configureMetrics(cfg)

	svc := newService(cfg, log)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	go reloadOnHangup(ctx, svc, log)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, cfg, svc, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr), logger.String("charts_dir", cfg.ChartsDir))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			return err
		}
	case <-ctx.Done():
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
		return err
	}
	log.Info(ctx, "server stopped")
	return nil
}

// configureMetrics applies the metrics settings before anything is recorded.
func configureMetrics(cfg *config.Config) {
	metrics.Configure(
		metrics.WithMetricsEnabled(cfg.MetricsEnabled),
		metrics.WithNamespace(cfg.MetricsNamespace),
		metrics.WithLatencyBuckets(cfg.MetricsLatencyBucketsMs),
	)
}

// newService builds the pricing service over the configured charts directory.
func newService(cfg *config.Config, log logger.Logger) *service.Service {
	store := repository.NewFileStore(cfg.ChartsDir, repository.WithLogger(log.Named("charts")))
	return service.New(
		service.WithStore(store),
		service.WithCatalog(cfg.Catalog()),
		service.WithEligibility(cfg.Eligibility()),
		service.WithMaxNights(cfg.MaxStayNights),
		service.WithMaxBookings(cfg.MaxScenarioBookings),
		service.WithCacheTTL(cfg.CacheTTL()),
		service.WithLogger(log.Named("service")),
	)
}

// newHandler registers the docs and API routes.
func newHandler(ctx context.Context, cfg *config.Config, svc *service.Service, log logger.Logger) http.Handler {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc,
		api.WithRateLimit(cfg.RateLimitPerSec, cfg.RateLimitBurst, cfg.RateLimitIdle()),
		api.WithLogger(log.Named("api")),
	).Register(ctx, mux)
	return mux
}

// reloadOnHangup re-reads the charts directory on SIGHUP.
func reloadOnHangup(ctx context.Context, svc *service.Service, log logger.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := svc.Reload(ctx); err != nil {
				log.Warn(ctx, "chart reload reported errors", logger.Error(err))
			}
			log.Info(ctx, "charts reloaded", logger.Int("charts", svc.GetStats()["charts"].(int)))
		}
	}
}
