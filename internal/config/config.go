// Package config loads the SoulsData service configuration.
package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	infraconfig "github.com/sammyhga/SoulsData/infrastructure/config"
)

// Default configuration values.
const (
	defaultServiceName = "soulsdata"
	defaultServicePort = 8095
	defaultVersion     = "0.1.0"
	defaultTokenTTL    = 12 * time.Hour

	defaultDBUser = "postgres"
	defaultDBName = "soulsdata"

	defaultSnapshotTTL = 2 * time.Minute

	defaultWindowDays    = 30
	defaultTimezone      = "UTC"
	defaultTopRecorders  = 10
	defaultTopResidences = 6
	defaultTopZones      = 6

	defaultIntakeRate  = 2.0
	defaultIntakeBurst = 10

	defaultDigestCron       = "0 6 * * *"
	defaultDigestWindowDays = 7
)

// Config holds the application configuration.
type Config struct {
	Service   ServiceConfig              `yaml:"service"`
	Database  infraconfig.DatabaseConfig `yaml:"database"`
	Redis     RedisConfig                `yaml:"redis"`
	Reporting ReportingConfig            `yaml:"reporting"`
	Intake    IntakeConfig               `yaml:"intake"`
	Scheduler SchedulerConfig            `yaml:"scheduler"`
	Logging   infraconfig.LoggingConfig  `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name        string        `yaml:"name"`
	Version     string        `yaml:"version"`
	Port        int           `env:"SOULSDATA_PORT"         yaml:"port"`
	Debug       bool          `env:"APP_DEBUG"              yaml:"debug"`
	JWTSecret   string        `env:"SOULSDATA_JWT_SECRET"   yaml:"jwt_secret"`
	TokenTTL    time.Duration `yaml:"token_ttl"`
	CORSOrigins []string      `env:"SOULSDATA_CORS_ORIGINS" yaml:"cors_origins"`
}

// RedisConfig adds the snapshot cache lifetime to the connection settings.
type RedisConfig struct {
	infraconfig.RedisConfig `yaml:",inline"`
	SnapshotTTL             time.Duration `env:"SOULSDATA_SNAPSHOT_TTL" yaml:"snapshot_ttl"`
}

// ReportingConfig controls the reporting engine.
type ReportingConfig struct {
	DefaultWindowDays int    `env:"SOULSDATA_DEFAULT_WINDOW" yaml:"default_window_days"`
	Timezone          string `env:"SOULSDATA_TIMEZONE"       yaml:"timezone"`
	TopRecorders      int    `yaml:"top_recorders"`
	TopResidences     int    `yaml:"top_residences"`
	TopZones          int    `yaml:"top_zones"`
}

// Location resolves Timezone.
func (r *ReportingConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", r.Timezone, err)
	}
	return loc, nil
}

// IntakeConfig limits how fast entries can be submitted per client.
type IntakeConfig struct {
	RatePerSecond float64 `yaml:"rate_per_second"`
	Burst         int     `yaml:"burst"`
}

// SchedulerConfig controls the daily digest job.
type SchedulerConfig struct {
	Enabled          bool   `env:"SOULSDATA_DIGEST_ENABLED" yaml:"enabled"`
	DigestCron       string `yaml:"digest_cron"`
	DigestWindowDays int    `yaml:"digest_window_days"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return infraconfig.LoadWithDefaults[Config](path, setDefaults)
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setRedisDefaults(&cfg.Redis)
	setReportingDefaults(&cfg.Reporting)
	setIntakeDefaults(&cfg.Intake)
	setSchedulerDefaults(&cfg.Scheduler)
	cfg.Logging.SetDefaults()
}

func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
	if svc.TokenTTL == 0 {
		svc.TokenTTL = defaultTokenTTL
	}
}

func setDatabaseDefaults(db *infraconfig.DatabaseConfig) {
	if db.User == "" {
		db.User = defaultDBUser
	}
	if db.Database == "" {
		db.Database = defaultDBName
	}
	db.SetDefaults()
}

func setRedisDefaults(r *RedisConfig) {
	r.SetDefaults()
	if r.SnapshotTTL == 0 {
		r.SnapshotTTL = defaultSnapshotTTL
	}
}

func setReportingDefaults(r *ReportingConfig) {
	if r.DefaultWindowDays == 0 {
		r.DefaultWindowDays = defaultWindowDays
	}
	if r.Timezone == "" {
		r.Timezone = defaultTimezone
	}
	if r.TopRecorders == 0 {
		r.TopRecorders = defaultTopRecorders
	}
	if r.TopResidences == 0 {
		r.TopResidences = defaultTopResidences
	}
	if r.TopZones == 0 {
		r.TopZones = defaultTopZones
	}
}

func setIntakeDefaults(in *IntakeConfig) {
	if in.RatePerSecond == 0 {
		in.RatePerSecond = defaultIntakeRate
	}
	if in.Burst == 0 {
		in.Burst = defaultIntakeBurst
	}
}

func setSchedulerDefaults(s *SchedulerConfig) {
	if s.DigestCron == "" {
		s.DigestCron = defaultDigestCron
	}
	if s.DigestWindowDays == 0 {
		s.DigestWindowDays = defaultDigestWindowDays
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := infraconfig.ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}

	positives := []struct {
		field string
		value int
	}{
		{"reporting.default_window_days", c.Reporting.DefaultWindowDays},
		{"reporting.top_recorders", c.Reporting.TopRecorders},
		{"reporting.top_residences", c.Reporting.TopResidences},
		{"reporting.top_zones", c.Reporting.TopZones},
		{"intake.burst", c.Intake.Burst},
		{"scheduler.digest_window_days", c.Scheduler.DigestWindowDays},
	}
	for _, p := range positives {
		if err := infraconfig.ValidatePositive(p.field, p.value); err != nil {
			return err
		}
	}
	if c.Intake.RatePerSecond <= 0 {
		return &infraconfig.ValidationError{Field: "intake.rate_per_second", Message: "must be greater than zero"}
	}

	if _, err := c.Reporting.Location(); err != nil {
		return &infraconfig.ValidationError{Field: "reporting.timezone", Message: err.Error()}
	}
	if c.Scheduler.Enabled {
		if _, err := cron.ParseStandard(c.Scheduler.DigestCron); err != nil {
			return &infraconfig.ValidationError{Field: "scheduler.digest_cron", Message: err.Error()}
		}
	}
	return nil
}
