package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/college-order-service/internal/metrics"
	"github.com/guttosm/college-order-service/internal/middleware"
	"github.com/guttosm/college-order-service/internal/service"
)

// APIPrefix is the path prefix of every versioned API route.
const APIPrefix = "/api/v1"

// Storefront pages are served from a separate dev server.
var defaultCORSOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

var (
	corsAllowHeaders = []string{
		"Origin", "Accept", "Accept-Encoding", "Accept-Language", "Authorization",
		"Cache-Control", "Content-Type", "Content-Length", "X-Requested-With",
		"X-API-Key", "X-Request-ID", middleware.IdempotencyKeyHeader,
	}
	corsExposeHeaders = []string{"X-Request-ID", middleware.IdempotencyReplayedHeader}
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit         int
	RateWindow        time.Duration
	RequestTimeout    time.Duration
	APIKeys           map[string]bool
	EnableIdempotency bool
	// Idempotency guards draft actions. NewRouter builds it when
	// EnableIdempotency is set and it is nil; engines sharing a config
	// share one replay cache.
	Idempotency       gin.HandlerFunc
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
	LoggingService    service.LoggingService
	AuthService       service.AuthService
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:         100,
		RateWindow:        time.Minute,
		RequestTimeout:    30 * time.Second,
		EnableIdempotency: true,
	}
}

// RouteGroup is a set of API routes mounted under APIPrefix.
type RouteGroup interface {
	RegisterRoutes(rg *gin.RouterGroup, cfg *RouterConfig)
}

// Handlers bundles the HTTP handlers the router mounts. A nil handler
// leaves its routes unregistered.
type Handlers struct {
	Storefront *Handler
	Drafts     *DraftsHandler
	Orders     *OrdersHandler
	PackSizes  *PackSizesHandler
	Auth       *AuthHandler
	Logs       *LogsHandler
	Upstream   *UpstreamHandler
}

// NewRouter builds the engine: infrastructure routes at the root and the
// storefront, upstream and admin groups under APIPrefix. Admin routes are
// only mounted when an AuthService is configured.
func NewRouter(handlers Handlers, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Recovery(), metrics.PrometheusMiddleware())
	router.Use(cors.New(corsConfig(cfg.CORSOrigins)), middleware.Compression())
	router.Use(middleware.RequestLogger(cfg.LoggingService), middleware.ErrorHandler())
	router.Use(exposeLoggingService(cfg.LoggingService))
	if cfg.RateLimit > 0 {
		router.Use(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow).RateLimit())
	}

	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	mountSwagger(router, cfg.SwaggerUser, cfg.SwaggerPass)

	api := router.Group(APIPrefix)
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.TimeoutWithDuration(cfg.RequestTimeout))
	}

	if cfg.EnableIdempotency && cfg.Idempotency == nil {
		cfg.Idempotency = middleware.Idempotency(middleware.DefaultIdempotencyConfig())
	}
	groups := []RouteGroup{
		NewStorefrontRoutes(handlers),
		NewUpstreamRoutes(handlers.Upstream),
	}
	if cfg.AuthService != nil {
		groups = append(groups, NewAdminRoutes(cfg.AuthService, handlers))
	}
	for _, g := range groups {
		g.RegisterRoutes(api, &cfg)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	return cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders:     corsAllowHeaders,
		ExposeHeaders:    corsExposeHeaders,
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
}

// exposeLoggingService lets handlers reach the log store for audit events.
func exposeLoggingService(ls service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ls != nil {
			c.Set(loggingServiceKey, ls)
		}
		c.Next()
	}
}

// mountSwagger serves the API docs, behind basic auth when credentials are set.
func mountSwagger(router *gin.Engine, user, pass string) {
	docs := ginSwagger.WrapHandler(swaggerFiles.Handler)
	if user == "" || pass == "" {
		router.GET("/swagger/*any", docs)
		return
	}
	router.Group("/swagger", gin.BasicAuth(gin.Accounts{user: pass})).GET("/*any", docs)
}
