// Package bootstrap wires SoulsData components from configuration. The
// HTTP server and soulsctl share it.
package bootstrap

import (
	"fmt"

	infraconfig "github.com/sammyhga/SoulsData/infrastructure/config"
	infralogger "github.com/sammyhga/SoulsData/infrastructure/logger"
	"github.com/sammyhga/SoulsData/internal/config"
)

// LoadConfig loads and validates configuration from CONFIG_PATH or
// config.yml.
func LoadConfig() (*config.Config, error) {
	return LoadConfigFrom(infraconfig.GetConfigPath("config.yml"))
}

// LoadConfigFrom loads and validates configuration from path.
func LoadConfigFrom(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// CreateLogger creates the service logger.
func CreateLogger(cfg *config.Config) (infralogger.Logger, error) {
	log, err := infralogger.New(infralogger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		Development: cfg.Service.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(infralogger.String("service", cfg.Service.Name)), nil
}
