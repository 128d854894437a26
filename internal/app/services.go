// Package app provides service initialization.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/guttosm/college-order-service/config"
	"github.com/guttosm/college-order-service/internal/catalog"
	"github.com/guttosm/college-order-service/internal/circuitbreaker"
	"github.com/guttosm/college-order-service/internal/collegeapi"
	"github.com/guttosm/college-order-service/internal/email"
	"github.com/guttosm/college-order-service/internal/repository"
	"github.com/guttosm/college-order-service/internal/service"
	"github.com/rs/zerolog/log"
)

const warmTimeout = 30 * time.Second

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Catalog   *catalog.Catalog
	PackSizes *service.PackSizesServiceImpl
	Orders    service.OrderService
	Drafts    *service.DraftServiceImpl
	// Auth is nil when no admin account is configured.
	Auth service.AuthService
	// Upstream answers 503 on college routes when no base URL is set;
	// the image proxy works either way.
	Upstream *collegeapi.Client
	Sender   email.Sender
	// CircuitBreakers are keyed by the name reported on /readyz.
	CircuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// InitializeServices initializes business logic services on top of the
// optional database components.
func InitializeServices(cfg config.Config, db *DatabaseComponents) (*ServiceComponents, error) {
	cat, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	var (
		packSizesRepo repository.PackSizesRepositoryInterface
		ordersRepo    repository.OrdersRepositoryInterface
		draftsRepo    repository.DraftsRepositoryInterface
	)
	if db != nil {
		packSizesRepo = db.PackSizesRepo
		ordersRepo = db.OrdersRepo
		draftsRepo = db.DraftsRepo
	}

	components := &ServiceComponents{
		Catalog:         cat,
		PackSizes:       service.NewPackSizesService(packSizesRepo, cfg.Cache.PolicyTTL),
		Orders:          service.NewOrderService(ordersRepo),
		CircuitBreakers: map[string]*circuitbreaker.CircuitBreaker{},
	}

	components.Sender = newSender(cfg.Email, cfg.Database, components.CircuitBreakers)
	components.Drafts = service.NewDraftService(
		cat,
		components.PackSizes,
		components.Orders,
		components.Sender,
		draftsRepo,
		service.DraftServiceConfig{
			ProviderEmail: cfg.Email.ProviderEmail,
			CacheCapacity: cfg.Cache.DraftsCapacity,
			CacheTTL:      cfg.Cache.DraftsTTL,
		},
	)

	if cfg.Auth.AdminEnabled() {
		components.Auth = service.NewAuthService(cfg.Auth)
	} else {
		log.Info().Msg("Admin account not configured - admin routes disabled")
	}

	var upstreamCB *circuitbreaker.CircuitBreaker
	if cfg.Upstream.Enabled() {
		upstreamCB = newBreaker("college-api", cfg.Database)
		components.CircuitBreakers["college_api"] = upstreamCB
	}
	components.Upstream = collegeapi.New(cfg.Upstream, &http.Client{Timeout: cfg.Upstream.Timeout}, upstreamCB)
	if cfg.Upstream.Enabled() {
		go warmUpstream(components.Upstream, cat.TemplateIDs())
	}

	return components, nil
}

// Stop releases the background caches owned by the services.
func (s *ServiceComponents) Stop() {
	s.Drafts.Stop()
	s.PackSizes.Stop()
	s.Upstream.Stop()
}

func loadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.File != "" {
		log.Info().Str("file", cfg.File).Msg("Loading catalog from file")
		return catalog.LoadFile(cfg.File)
	}
	return catalog.Default()
}

func newSender(cfg config.EmailConfig, dbCfg config.DatabaseConfig, breakers map[string]*circuitbreaker.CircuitBreaker) email.Sender {
	if !cfg.Enabled {
		log.Info().Msg("Email delivery disabled - confirmations are logged only")
		return email.NoopSender{}
	}
	cb := newBreaker("emailjs", dbCfg)
	breakers["emailjs"] = cb
	return email.NewEmailJSSender(cfg, &http.Client{Timeout: cfg.Timeout}, cb)
}

// newBreaker builds a breaker for an outbound HTTP dependency with the
// thresholds shared by the database breakers.
func newBreaker(name string, cfg config.DatabaseConfig) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             name,
	})
}

func warmUpstream(client *collegeapi.Client, templateIDs []string) {
	ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
	defer cancel()

	if err := client.Warm(ctx, templateIDs); err != nil {
		log.Warn().Err(err).Msg("Failed to warm college API cache")
		return
	}
	log.Info().Int("templates", len(templateIDs)).Msg("College API cache warmed")
}
