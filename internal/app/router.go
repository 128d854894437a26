// Package app provides router configuration.
package app

import (
	"github.com/guttosm/college-order-service/config"
	"github.com/guttosm/college-order-service/internal/http"
	"github.com/guttosm/college-order-service/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handlers      http.Handlers
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(
	services *ServiceComponents,
	dbComponents *DatabaseComponents,
	cfg config.Config,
) *RouterComponents {
	var loggingService service.LoggingService
	if dbComponents != nil {
		loggingService = dbComponents.LoggingService
	}

	handlers := http.Handlers{
		Storefront: http.NewHandler(services.Catalog, services.PackSizes),
		Drafts:     http.NewDraftsHandler(services.Drafts),
		Orders:     http.NewOrdersHandler(services.Orders),
		PackSizes:  http.NewPackSizesHandler(services.PackSizes),
		Upstream:   http.NewUpstreamHandler(services.Upstream),
	}
	if services.Auth != nil {
		handlers.Auth = http.NewAuthHandler(services.Auth)
	}
	if loggingService != nil {
		handlers.Logs = http.NewLogsHandler(loggingService)
	}

	healthHandler := http.NewHealthHandler()
	if dbComponents != nil {
		healthHandler.RegisterChecker("mongodb", http.HealthCheckFunc(dbComponents.HealthCheck))
		for name, cb := range dbComponents.CircuitBreakers {
			healthHandler.RegisterCircuitBreaker(name, cb)
		}
	}
	for name, cb := range services.CircuitBreakers {
		healthHandler.RegisterOptionalCircuitBreaker(name, cb)
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		RequestTimeout:    cfg.Server.RequestTimeout,
		EnableIdempotency: true,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		LoggingService:    loggingService,
		AuthService:       services.Auth,
	}
	if cfg.Auth.Enabled {
		routerCfg.APIKeys = cfg.Auth.APIKeys
	}

	return &RouterComponents{
		Handlers:      handlers,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}
