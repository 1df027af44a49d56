package api

import (
	"time"

	"github.com/gin-gonic/gin"

	infragin "github.com/sammyhga/SoulsData/infrastructure/gin"
	"github.com/sammyhga/SoulsData/infrastructure/logger"
	"github.com/sammyhga/SoulsData/internal/config"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 60 * time.Second
)

// HealthPings are the dependency checks reported by /health. A nil Redis
// ping means the cache is disabled.
type HealthPings struct {
	Database func() error
	Redis    func() error
}

// NewServer creates the HTTP server.
func NewServer(cfg *config.Config, routes Routes, pings HealthPings, log logger.Logger) *infragin.Server {
	routes.JWTSecret = cfg.Service.JWTSecret

	b := infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithCORSOrigins(cfg.Service.CORSOrigins).
		WithTimeouts(defaultReadTimeout, defaultWriteTimeout, defaultIdleTimeout)

	if pings.Database != nil {
		b = b.WithDatabaseHealthCheck(pings.Database)
	}
	if pings.Redis != nil {
		b = b.WithRedisHealthCheck(pings.Redis)
	}

	return b.WithRoutes(func(router *gin.Engine) {
		SetupRoutes(router, routes)
	}).Build()
}
