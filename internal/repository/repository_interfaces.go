// Package repository provides the MongoDB data access layer.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/college-order-service/internal/domain/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrOrderNotFound is returned when no order has the requested ID.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDraftNotFound is returned when no draft has the requested key.
	ErrDraftNotFound = errors.New("draft not found")
	// ErrRuleSetNotFound is returned when no pack size rule set has the requested ID.
	ErrRuleSetNotFound = errors.New("pack size rule set not found")
)

// IsNotFound reports whether err is one of the not-found errors of this package.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrDraftNotFound) ||
		errors.Is(err, ErrRuleSetNotFound)
}

// PackSizesRepositoryInterface stores versioned pack size rule sets.
type PackSizesRepositoryInterface interface {
	GetActive(ctx context.Context) (*model.PackSizeRuleSet, error)
	Create(ctx context.Context, rules model.PackSizeRules, createdBy string) (*model.PackSizeRuleSet, error)
	Update(ctx context.Context, id primitive.ObjectID, rules model.PackSizeRules, updatedBy string) (*model.PackSizeRuleSet, error)
	List(ctx context.Context, limit int) ([]model.PackSizeRuleSet, error)
}

// OrdersRepositoryInterface stores submitted orders.
type OrdersRepositoryInterface interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, notes string) (*model.Order, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, college string, since time.Time) (*model.OrderStats, error)
}

// DraftsRepositoryInterface persists in-progress order drafts.
type DraftsRepositoryInterface interface {
	Load(ctx context.Context, college, id string) (*model.Draft, error)
	Save(ctx context.Context, draft *model.Draft) error
	Delete(ctx context.Context, college, id string) error
}

// LogsRepositoryInterface stores request and audit log entries.
type LogsRepositoryInterface interface {
	Create(ctx context.Context, entry *LogEntryDocument) error
	CreateMany(ctx context.Context, entries []*LogEntryDocument) error
	Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error)
	Count(ctx context.Context, opts LogQueryOptions) (int64, error)
}
