package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/guttosm/college-order-service/internal/repository"
)

// RecentOrdersWindow is how far back an order counts as recent in stats.
const RecentOrdersWindow = 30 * 24 * time.Hour

// DefaultOrderListLimit caps order listings without an explicit limit.
const DefaultOrderListLimit = 100

// NewOrderID returns an order number of the form ORD-YYYYMMDDHHMMSS-XXXX.
func NewOrderID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:4])
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102150405"), suffix)
}

// OrderService stores submitted orders and serves the admin views.
type OrderService interface {
	Create(ctx context.Context, order *model.Order) error
	Get(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	Recent(ctx context.Context, n int) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, notes string) (*model.Order, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, college string) (*model.OrderStats, error)
}

// OrderServiceImpl implements OrderService.
type OrderServiceImpl struct {
	ordersRepo repository.OrdersRepositoryInterface
	now        func() time.Time
}

// NewOrderService creates an order service. A nil repo makes every call
// fail with ErrRepositoryNotConfigured.
func NewOrderService(ordersRepo repository.OrdersRepositoryInterface) *OrderServiceImpl {
	return &OrderServiceImpl{ordersRepo: ordersRepo, now: time.Now}
}

// Configured reports whether orders are persisted.
func (s *OrderServiceImpl) Configured() bool {
	return s.ordersRepo != nil
}

func (s *OrderServiceImpl) Create(ctx context.Context, order *model.Order) error {
	if s.ordersRepo == nil {
		return ErrRepositoryNotConfigured
	}
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}
	return s.ordersRepo.Create(ctx, order)
}

func (s *OrderServiceImpl) Get(ctx context.Context, id string) (*model.Order, error) {
	if s.ordersRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.ordersRepo.GetByID(ctx, id)
}

func (s *OrderServiceImpl) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if s.ordersRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidOrderStatus, filter.Status)
	}
	if filter.Limit <= 0 || filter.Limit > DefaultOrderListLimit {
		filter.Limit = DefaultOrderListLimit
	}
	return s.ordersRepo.List(ctx, filter)
}

func (s *OrderServiceImpl) Recent(ctx context.Context, n int) ([]model.Order, error) {
	return s.List(ctx, model.OrderFilter{Limit: n})
}

func (s *OrderServiceImpl) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, notes string) (*model.Order, error) {
	if s.ordersRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidOrderStatus, status)
	}
	return s.ordersRepo.UpdateStatus(ctx, id, status, notes)
}

func (s *OrderServiceImpl) Delete(ctx context.Context, id string) error {
	if s.ordersRepo == nil {
		return ErrRepositoryNotConfigured
	}
	return s.ordersRepo.Delete(ctx, id)
}

func (s *OrderServiceImpl) Stats(ctx context.Context, college string) (*model.OrderStats, error) {
	if s.ordersRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.ordersRepo.Stats(ctx, college, s.now().Add(-RecentOrdersWindow))
}
