package app

import (
	"context"
	"time"

	"github.com/guttosm/college-order-service/config"
	"github.com/guttosm/college-order-service/internal/circuitbreaker"
	"github.com/guttosm/college-order-service/internal/logger"
	"github.com/guttosm/college-order-service/internal/repository"
	"github.com/guttosm/college-order-service/internal/service"
)

// Readiness names of the MongoDB breakers.
const (
	breakerPackSizes = "mongodb_pack_sizes"
	breakerOrders    = "mongodb_orders"
	breakerDrafts    = "mongodb_drafts"
	breakerLogs      = "mongodb_logs"
)

const setupTimeout = 10 * time.Second

// DatabaseComponents holds the MongoDB connection and the breaker-wrapped
// repositories built on it.
type DatabaseComponents struct {
	DB             *repository.MongoDB
	PackSizesRepo  repository.PackSizesRepositoryInterface
	OrdersRepo     repository.OrdersRepositoryInterface
	DraftsRepo     repository.DraftsRepositoryInterface
	LoggingService service.LoggingService
	// CircuitBreakers are keyed by the name reported on /readyz.
	CircuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB. It returns nil when the
// database is disabled or unreachable; the service then keeps drafts in
// memory and prices packs with the built-in rules.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		logger.Error().Err(err).Msg("MongoDB unavailable, running without persistence")
		return nil
	}
	logger.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	if err := db.SetLogsTTL(ctx, ttlDays(cfg.LogsTTL)); err != nil {
		logger.Warn().Err(err).Msg("Failed to set logs TTL index")
	}
	if err := db.SetDraftsTTL(ctx, cfg.DraftsTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to set drafts TTL index")
	}

	breakers := newMongoBreakers(cfg)
	packSizes := repository.NewPackSizesRepositoryWithCircuitBreaker(repository.NewPackSizesRepository(db), breakers[breakerPackSizes])
	if err := seedPackSizes(ctx, packSizes); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default pack size rules")
	}

	return &DatabaseComponents{
		DB:            db,
		PackSizesRepo: packSizes,
		OrdersRepo:    repository.NewOrdersRepositoryWithCircuitBreaker(repository.NewOrdersRepository(db), breakers[breakerOrders]),
		DraftsRepo:    repository.NewDraftsRepositoryWithCircuitBreaker(repository.NewDraftsRepository(db), breakers[breakerDrafts]),
		LoggingService: service.NewLoggingService(
			repository.NewLogsRepositoryWithCircuitBreaker(repository.NewLogsRepository(db), breakers[breakerLogs]),
		),
		CircuitBreakers: breakers,
	}
}

// newMongoBreakers returns one breaker per collection. Not-found results
// are normal lookups and never count as failures.
func newMongoBreakers(cfg config.DatabaseConfig) map[string]*circuitbreaker.CircuitBreaker {
	breakers := make(map[string]*circuitbreaker.CircuitBreaker, 4)
	for _, name := range []string{breakerPackSizes, breakerOrders, breakerDrafts, breakerLogs} {
		breakers[name] = circuitbreaker.New(circuitbreaker.Config{
			Name:             name,
			FailureThreshold: cfg.CircuitBreakerFailureThreshold,
			SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
			Timeout:          cfg.CircuitBreakerTimeout,
			Ignore:           repository.IsNotFound,
		})
	}
	return breakers
}

// ttlDays rounds a retention period up to whole days. Any positive
// period keeps entries for at least one day.
func ttlDays(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	const day = 24 * time.Hour
	return int((d + day - 1) / day)
}

// HealthCheck pings MongoDB with a short deadline.
func (d *DatabaseComponents) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return d.DB.HealthCheck(ctx)
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.DB.Close(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to close MongoDB connection")
	}
}

// seedPackSizes stores the built-in rules as version 1 when no rule set
// exists, so admins edit from a visible baseline.
func seedPackSizes(ctx context.Context, repo repository.PackSizesRepositoryInterface) error {
	active, err := repo.GetActive(ctx)
	if err != nil || active != nil {
		return err
	}

	set, err := repo.Create(ctx, service.DefaultPackSizeRules(), "system")
	if err != nil {
		return err
	}
	logger.Info().Int("version", set.Version).Msg("Seeded default pack size rules")
	return nil
}
