package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/elimufine/elimu-backend/internal/config"
	"github.com/elimufine/elimu-backend/internal/handler"
	"github.com/elimufine/elimu-backend/internal/i18n"
	"github.com/elimufine/elimu-backend/internal/metrics"
	"github.com/elimufine/elimu-backend/internal/middleware"
	"github.com/elimufine/elimu-backend/internal/response"
)

// staticMaxAge is the client cache lifetime of dashboards and lexicons.
const staticMaxAge = 5 * time.Minute

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Generation *handler.GenerationHandler
	Dashboard  *handler.DashboardHandler
	Shell      *handler.ShellHandler
	WS         *handler.WSHandler
	System     *handler.SystemHandler
}

// Deps carries the shared infrastructure the routes need.
type Deps struct {
	Catalog  *i18n.Catalog
	Limiter  middleware.Limiter
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Log      zerolog.Logger
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, deps *Deps, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

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
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", response.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{response.HeaderRequestID}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the access log and every envelope carry it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.AccessLog(deps.Log))
	if deps.Metrics != nil {
		router.Use(middleware.RequestMetrics(deps.Metrics))
	}
	router.Use(middleware.Brotli())

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	// ─── System ────────────────────────────────────────────────────────
	router.GET("/health", handlers.System.Health)
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	defaultLang, err := deps.Catalog.ParseLanguage(cfg.DefaultLanguage)
	if err != nil {
		deps.Log.Warn().Str("language", cfg.DefaultLanguage).Msg("Unsupported DEFAULT_LANGUAGE, using fallback")
		defaultLang = i18n.Fallback
	}
	lang := middleware.Language(deps.Catalog, defaultLang)
	limit := middleware.RateLimit(deps.Limiter, "generate", deps.Metrics, deps.Log)

	// ─── 1. Shell (static, cacheable) ──────────────────────────────────
	shell := router.Group("/api/v1")
	shell.Use(middleware.CacheControl(staticMaxAge))
	{
		shell.GET("/roles", lang, handlers.Shell.GetRoles)
		shell.GET("/lexicons/:lang", handlers.Shell.GetLexicon)
		shell.GET("/dashboards/:role", middleware.RequireRole(), lang, handlers.Dashboard.GetDashboard)
		shell.GET("/teacher/resources", handlers.Dashboard.SearchResources)
	}

	// ─── 2. Generation (rate limited, never cached) ────────────────────
	generate := router.Group("/api/v1/generate")
	generate.Use(limit, middleware.NoStore())
	{
		generate.POST("/lesson", handlers.Generation.GenerateLesson)
		generate.POST("/certificate", handlers.Generation.GenerateCertificate)
	}

	// ─── 3. WebSocket ──────────────────────────────────────────────────
	// The upgrade itself is free; WSHandler charges each generation action.
	ws := router.Group("/ws/v1")
	{
		ws.GET("/generate", handlers.WS.GenerateStream)
	}

	return router
}
