package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship-tracker/internal/applications"
	"internship-tracker/internal/services/health"
	"internship-tracker/internal/shared/config"
	"internship-tracker/internal/shared/metrics"
	"internship-tracker/internal/shared/server/middleware"
	"internship-tracker/internal/shared/server/respond"
)

// RouterDeps holds the dependencies required to register routes.
type RouterDeps struct {
	Config              config.Config
	ApplicationsHandler *applications.Handler
	Health              *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.JSON(c, http.StatusOK, gin.H{"ok": true})
			return
		}
		respond.JSON(c, http.StatusOK, deps.Health.Status())
	})
	if deps.ApplicationsHandler != nil {
		deps.ApplicationsHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
