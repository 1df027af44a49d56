package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"

	infralogger "github.com/sammyhga/SoulsData/infrastructure/logger"
	infraredis "github.com/sammyhga/SoulsData/infrastructure/redis"
	"github.com/sammyhga/SoulsData/infrastructure/retry"
	"github.com/sammyhga/SoulsData/internal/analytics"
	"github.com/sammyhga/SoulsData/internal/cache"
	"github.com/sammyhga/SoulsData/internal/config"
	"github.com/sammyhga/SoulsData/internal/database"
	"github.com/sammyhga/SoulsData/internal/service"
	"github.com/sammyhga/SoulsData/internal/telemetry"
)

// Components holds everything built from configuration.
type Components struct {
	DB        *sqlx.DB
	Redis     *goredis.Client
	Repo      *database.EntryRepository
	Telemetry *telemetry.Provider
	Engine    *analytics.Engine
	Entries   *service.EntryService
	Reports   *service.ReportService
}

// NewComponents connects to the database, and to Redis when enabled, and
// builds the services. A Redis connection failure disables the cache
// rather than failing startup.
func NewComponents(ctx context.Context, cfg *config.Config, log infralogger.Logger) (*Components, error) {
	loc, err := cfg.Reporting.Location()
	if err != nil {
		return nil, err
	}

	db, err := connectDatabase(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	log.Info("Database connected",
		infralogger.String("host", cfg.Database.Host),
		infralogger.Int("port", cfg.Database.Port),
		infralogger.String("database", cfg.Database.Database),
	)

	c := &Components{
		DB:        db,
		Repo:      database.NewEntryRepository(db),
		Telemetry: telemetry.NewProvider(),
	}

	var snapshots cache.SnapshotCache = cache.NopSnapshotCache{}
	if cfg.Redis.Enabled {
		client, redisErr := infraredis.NewClient(ctx, cfg.Redis.RedisConfig)
		if redisErr != nil {
			log.Warn("Redis unavailable, snapshot cache disabled", infralogger.Error(redisErr))
		} else {
			c.Redis = client
			snapshots = cache.NewRedisSnapshotCache(client, cfg.Redis.SnapshotTTL)
			log.Info("Snapshot cache enabled",
				infralogger.String("address", cfg.Redis.Address),
				infralogger.Duration("ttl", cfg.Redis.SnapshotTTL),
			)
		}
	}

	c.Engine = analytics.NewEngine(analytics.Options{
		TopRecorders:  cfg.Reporting.TopRecorders,
		TopResidences: cfg.Reporting.TopResidences,
		TopZones:      cfg.Reporting.TopZones,
		Location:      loc,
	})
	c.Entries = service.NewEntryService(c.Repo, snapshots, loc, c.Telemetry.Metrics, log)
	c.Reports = service.NewReportService(c.Entries, c.Engine, cfg.Reporting.DefaultWindowDays, c.Telemetry, log)

	return c, nil
}

// connectDatabase retries while Postgres is still coming up, which is
// common when both start under docker compose.
func connectDatabase(ctx context.Context, cfg *config.Config, log infralogger.Logger) (*sqlx.DB, error) {
	var db *sqlx.DB
	err := retry.Do(ctx, retry.DefaultConfig(), func(ctx context.Context) error {
		conn, connErr := database.NewPostgresConnection(ctx, cfg.Database)
		if connErr != nil {
			return connErr
		}
		db = conn
		return nil
	}, func(attempt int, delay time.Duration, err error) {
		log.Warn("Database not ready, retrying",
			infralogger.Int("attempt", attempt),
			infralogger.Duration("delay", delay),
			infralogger.Error(err),
		)
	})
	return db, err
}

// Close releases connections.
func (c *Components) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		_ = c.DB.Close()
	}
}
