package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sammyhga/SoulsData/infrastructure/logger"
	"github.com/sammyhga/SoulsData/infrastructure/profiling"
	"github.com/sammyhga/SoulsData/internal/api"
	"github.com/sammyhga/SoulsData/internal/bootstrap"
	"github.com/sammyhga/SoulsData/internal/config"
	"github.com/sammyhga/SoulsData/internal/scheduler"
	"github.com/sammyhga/SoulsData/internal/telemetry"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	log, err := bootstrap.CreateLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	profiling.StartPprofServer(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	comps, err := bootstrap.NewComponents(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to initialize components", logger.Error(err))
		return 1
	}
	defer comps.Close()

	if cfg.Scheduler.Enabled {
		digest := scheduler.New(scheduler.Options{
			Spec:       cfg.Scheduler.DigestCron,
			WindowDays: cfg.Scheduler.DigestWindowDays,
			Location:   comps.Engine.Location(),
		}, comps.Entries, comps.Engine, comps.Telemetry.Metrics, log)
		if err = digest.Start(ctx); err != nil {
			log.Error("Failed to start digest scheduler", logger.Error(err))
			return 1
		}
		defer digest.Stop()
	}

	return runServer(ctx, cfg, comps, log)
}

// runServer builds the HTTP server and serves until shutdown.
func runServer(ctx context.Context, cfg *config.Config, comps *bootstrap.Components, log logger.Logger) int {
	metrics := comps.Telemetry.Metrics
	limiter := api.NewIntakeLimiter(cfg.Intake.RatePerSecond, cfg.Intake.Burst, func() {
		metrics.EntriesRejected.WithLabelValues(telemetry.RejectThrottled).Inc()
	})

	handler := api.NewHandler(comps.Entries, comps.Reports, comps.Engine.Location(), log)

	pings := api.HealthPings{
		Database: func() error { return comps.Repo.Ping(ctx) },
	}
	if comps.Redis != nil {
		pings.Redis = func() error { return comps.Redis.Ping(ctx).Err() }
	}

	server := api.NewServer(cfg, api.Routes{
		Handler:        handler,
		Limiter:        limiter,
		Metrics:        comps.Telemetry.Handler(),
		RequestMetrics: comps.Telemetry.GinMiddleware(),
	}, pings, log)

	log.Info("SoulsData starting",
		logger.Int("port", cfg.Service.Port),
		logger.Bool("auth_enabled", cfg.Service.JWTSecret != ""),
		logger.Int("default_window_days", cfg.Reporting.DefaultWindowDays),
	)

	if err := server.Run(ctx); err != nil {
		log.Error("Server error", logger.Error(err))
		return 1
	}

	log.Info("SoulsData exited cleanly")
	return 0
}
