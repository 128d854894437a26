package repository

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/college-order-service/internal/circuitbreaker"
	"github.com/guttosm/college-order-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewCircuitBreaker returns a breaker for repository calls. Not-found
// errors are returned without counting as failures.
func NewCircuitBreaker(name string, failureThreshold int, timeout time.Duration) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: failureThreshold,
		SuccessThreshold: 2,
		Timeout:          timeout,
		Name:             name,
		Ignore:           IsNotFound,
	})
}

// PackSizesRepositoryWithCircuitBreaker wraps a pack sizes repository with circuit breaker protection.
type PackSizesRepositoryWithCircuitBreaker struct {
	repo           PackSizesRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewPackSizesRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewPackSizesRepositoryWithCircuitBreaker(repo PackSizesRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *PackSizesRepositoryWithCircuitBreaker {
	return &PackSizesRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// GetActive returns the active rule set. An open circuit reports no active
// set so callers fall back to the built-in rules.
func (r *PackSizesRepositoryWithCircuitBreaker) GetActive(ctx context.Context) (*model.PackSizeRuleSet, error) {
	set, err := circuitbreaker.Call(ctx, r.circuitBreaker, func() (*model.PackSizeRuleSet, error) {
		return r.repo.GetActive(ctx)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil, nil
	}
	return set, err
}

// Create stores a new active rule set.
func (r *PackSizesRepositoryWithCircuitBreaker) Create(ctx context.Context, rules model.PackSizeRules, createdBy string) (*model.PackSizeRuleSet, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (*model.PackSizeRuleSet, error) {
		return r.repo.Create(ctx, rules, createdBy)
	})
}

// Update replaces the rules of a stored set.
func (r *PackSizesRepositoryWithCircuitBreaker) Update(ctx context.Context, id primitive.ObjectID, rules model.PackSizeRules, updatedBy string) (*model.PackSizeRuleSet, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (*model.PackSizeRuleSet, error) {
		return r.repo.Update(ctx, id, rules, updatedBy)
	})
}

// List returns stored rule sets.
func (r *PackSizesRepositoryWithCircuitBreaker) List(ctx context.Context, limit int) ([]model.PackSizeRuleSet, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() ([]model.PackSizeRuleSet, error) {
		return r.repo.List(ctx, limit)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *PackSizesRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// OrdersRepositoryWithCircuitBreaker wraps an orders repository with circuit breaker protection.
type OrdersRepositoryWithCircuitBreaker struct {
	repo           OrdersRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewOrdersRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewOrdersRepositoryWithCircuitBreaker(repo OrdersRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *OrdersRepositoryWithCircuitBreaker {
	return &OrdersRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *OrdersRepositoryWithCircuitBreaker) Create(ctx context.Context, order *model.Order) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, order)
	})
}

func (r *OrdersRepositoryWithCircuitBreaker) GetByID(ctx context.Context, id string) (*model.Order, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (*model.Order, error) {
		return r.repo.GetByID(ctx, id)
	})
}

func (r *OrdersRepositoryWithCircuitBreaker) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() ([]model.Order, error) {
		return r.repo.List(ctx, filter)
	})
}

func (r *OrdersRepositoryWithCircuitBreaker) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, notes string) (*model.Order, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (*model.Order, error) {
		return r.repo.UpdateStatus(ctx, id, status, notes)
	})
}

func (r *OrdersRepositoryWithCircuitBreaker) Delete(ctx context.Context, id string) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Delete(ctx, id)
	})
}

func (r *OrdersRepositoryWithCircuitBreaker) Stats(ctx context.Context, college string, since time.Time) (*model.OrderStats, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (*model.OrderStats, error) {
		return r.repo.Stats(ctx, college, since)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *OrdersRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// DraftsRepositoryWithCircuitBreaker wraps a drafts repository with circuit breaker protection.
type DraftsRepositoryWithCircuitBreaker struct {
	repo           DraftsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewDraftsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewDraftsRepositoryWithCircuitBreaker(repo DraftsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *DraftsRepositoryWithCircuitBreaker {
	return &DraftsRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

func (r *DraftsRepositoryWithCircuitBreaker) Load(ctx context.Context, college, id string) (*model.Draft, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (*model.Draft, error) {
		return r.repo.Load(ctx, college, id)
	})
}

func (r *DraftsRepositoryWithCircuitBreaker) Save(ctx context.Context, draft *model.Draft) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Save(ctx, draft)
	})
}

func (r *DraftsRepositoryWithCircuitBreaker) Delete(ctx context.Context, college, id string) error {
	return r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Delete(ctx, college, id)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *DraftsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// LogsRepositoryWithCircuitBreaker wraps a logs repository with circuit breaker protection.
type LogsRepositoryWithCircuitBreaker struct {
	repo           LogsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewLogsRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewLogsRepositoryWithCircuitBreaker(repo LogsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *LogsRepositoryWithCircuitBreaker {
	return &LogsRepositoryWithCircuitBreaker{repo: repo, circuitBreaker: cb}
}

// Create stores a log entry. Writes are dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) Create(ctx context.Context, entry *LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, entry)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores log entries in bulk. Writes are dropped while the circuit is open.
func (r *LogsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, entries)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *LogsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() ([]*LogEntryDocument, error) {
		return r.repo.Query(ctx, opts)
	})
}

func (r *LogsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func() (int64, error) {
		return r.repo.Count(ctx, opts)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *LogsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
