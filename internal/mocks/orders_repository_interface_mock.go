// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"
	"time"

	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockOrdersRepositoryInterface struct {
	mock.Mock
}

func (m *MockOrdersRepositoryInterface) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrdersRepositoryInterface) GetByID(ctx context.Context, id string) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrdersRepositoryInterface) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrdersRepositoryInterface) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, notes string) (*model.Order, error) {
	args := m.Called(ctx, id, status, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrdersRepositoryInterface) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrdersRepositoryInterface) Stats(ctx context.Context, college string, since time.Time) (*model.OrderStats, error) {
	args := m.Called(ctx, college, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderStats), args.Error(1)
}
