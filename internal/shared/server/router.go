package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/analyses"
	"resume-analyzer/internal/shared/config"
	"resume-analyzer/internal/shared/metrics"
	"resume-analyzer/internal/shared/server/middleware"
	"resume-analyzer/internal/shared/server/respond"
	"resume-analyzer/internal/users"
)

const completionRateGroup = "COMPLETION"

// RouterDeps carries the handlers the router wires up. Dependencies are
// constructed in bootstrap, not here.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *analyses.Handler
	UserHandler     *users.Handler
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
	r.GET("/api/v1/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.Auth())
	// Completion-backed endpoints are the expensive ones; throttle them
	// per user.
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			completionRateGroup: {Rate: 0.5, Burst: 5},
		},
		GroupFor: func(c *gin.Context) string {
			path := c.Request.URL.Path
			if strings.HasPrefix(path, "/api/v1/resume/analyze") || strings.HasPrefix(path, "/api/v1/resume/match-job/") {
				return completionRateGroup
			}
			return ""
		},
	}))
	deps.UserHandler.RegisterRoutes(api)
	deps.AnalysisHandler.RegisterRoutes(api)

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
