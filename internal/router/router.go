package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/DigiCred-Holdings/credential-analysis/internal/config"
	"github.com/DigiCred-Holdings/credential-analysis/internal/handler"
	"github.com/DigiCred-Holdings/credential-analysis/internal/middleware"
	"github.com/DigiCred-Holdings/credential-analysis/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Analysis *handler.AnalysisHandler
	Registry *handler.RegistryHandler
	WS       *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for analysis routes (60 requests per minute per IP);
	// each request fans out a catalog fetch and possibly an LLM call.
	analysisLimiter := middleware.NewRateLimiter(60, time.Minute)

	// ─── 1. Analysis Group (Rate Limited, Optional Service Auth) ───────
	analysisAPI := router.Group("/api/v1/analysis")
	analysisAPI.Use(analysisLimiter.Middleware())
	if cfg.AuthTokenSecret != "" {
		analysisAPI.Use(middleware.RequireServiceJWT(cfg.AuthTokenSecret))
	}
	{
		analysisAPI.POST("/transcript", handlers.Analysis.AnalyzeTranscript)
	}

	// ─── 2. Registry Group (Read-Only Browsing) ────────────────────────
	registryAPI := router.Group("/api/v1/registry")
	{
		registryAPI.GET("/sources", handlers.Registry.ListSources)
		registryAPI.GET("/sources/:source/courses", handlers.Registry.ListCourses)
	}

	// ─── 3. WebSocket Group (Streaming Analysis) ───────────────────────
	wsGroup := router.Group("/ws/v1")
	if cfg.AuthTokenSecret != "" {
		wsGroup.Use(middleware.RequireServiceJWT(cfg.AuthTokenSecret))
	}
	{
		wsGroup.GET("/analysis/stream", handlers.WS.AnalysisStream)
	}

	return router
}
