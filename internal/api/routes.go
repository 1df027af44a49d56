package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	infragin "github.com/sammyhga/SoulsData/infrastructure/gin"
	"github.com/sammyhga/SoulsData/infrastructure/jwt"
	"github.com/sammyhga/SoulsData/infrastructure/monitoring"
)

// Routes bundles what SetupRoutes registers.
type Routes struct {
	Handler        *Handler
	Limiter        *IntakeLimiter
	Metrics        http.Handler
	RequestMetrics gin.HandlerFunc
	JWTSecret      string
}

// SetupRoutes registers /metrics and the /api/v1 group. Health routes are
// registered by the infrastructure gin builder.
func SetupRoutes(router *gin.Engine, r Routes) {
	if r.RequestMetrics != nil {
		router.Use(r.RequestMetrics)
	}

	router.GET("/health/memory", gin.WrapF(monitoring.MemoryHealthHandler))

	if r.Metrics != nil {
		router.GET("/metrics", gin.WrapH(r.Metrics))
	}

	v1 := infragin.ProtectedGroup(router, "/api/v1", r.JWTSecret)

	v1.GET("/reports", r.Handler.GetReport)

	intake := []gin.HandlerFunc{r.Handler.CreateEntry}
	if r.Limiter != nil {
		intake = append([]gin.HandlerFunc{r.Limiter.Middleware()}, intake...)
	}
	v1.POST("/entries", intake...)

	admin := v1.Group("/entries")
	admin.Use(jwt.RequireRole(jwt.RoleAdmin))
	admin.GET("", r.Handler.ListEntries)
	admin.GET("/export", r.Handler.ExportEntries)
	admin.DELETE("/:id", r.Handler.DeleteEntry)
}
