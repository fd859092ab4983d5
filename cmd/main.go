package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loremdai/tennishealth/internal/adapters/http/ops"
	app "github.com/loremdai/tennishealth/internal/app"
	"github.com/loremdai/tennishealth/internal/config"
	"github.com/loremdai/tennishealth/pkg/logger"
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
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(log),
		app.WithExportDir(cfg.ExportDir),
		app.WithStatePath(cfg.StatePath),
		app.WithNameMarkers(cfg.NameMarkers),
		app.WithMinDuration(time.Duration(cfg.MinDurationSeconds)*time.Second),
		app.WithHistorySize(cfg.ProcessedHistorySize),
		app.WithZoneBounds(cfg.ZoneLower, cfg.ZoneUpper),
		app.WithReportLatencyRange(
			time.Duration(cfg.ReportLatencyMinMS)*time.Millisecond,
			time.Duration(cfg.ReportLatencyMaxMS)*time.Millisecond,
		),
	)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Operational HTTP surface: health and Prometheus metrics.
	mux := http.NewServeMux()
	ops.NewHandler().Register(mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting ops HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	// Run the batch for the configured date (default: today).
	date := time.Now()
	if cfg.Date != "" {
		// Validated at config load.
		date, _ = time.Parse("2006-01-02", cfg.Date)
	}

	result, err := svc.ProcessDate(ctx, date)
	if err != nil {
		log.Error(ctx, "batch run failed", logger.Error(err))
	} else {
		for _, r := range result.MatchReports {
			log.Info(ctx, "match report",
				logger.String("workoutID", r.WorkoutID),
				logger.String("report", r.Text),
			)
		}
		if result.PeriodReport != "" {
			log.Info(ctx, "period report",
				logger.String("date", result.Date),
				logger.String("report", result.PeriodReport),
			)
		}
	}

	// Stay up for scraping until interrupted.
	<-ctx.Done()
	log.Info(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "stopped")
}
