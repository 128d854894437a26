// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockPackSizesRepositoryInterface struct {
	mock.Mock
}

func (m *MockPackSizesRepositoryInterface) GetActive(ctx context.Context) (*model.PackSizeRuleSet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PackSizeRuleSet), args.Error(1)
}

func (m *MockPackSizesRepositoryInterface) Create(ctx context.Context, rules model.PackSizeRules, createdBy string) (*model.PackSizeRuleSet, error) {
	args := m.Called(ctx, rules, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PackSizeRuleSet), args.Error(1)
}

func (m *MockPackSizesRepositoryInterface) Update(ctx context.Context, id primitive.ObjectID, rules model.PackSizeRules, updatedBy string) (*model.PackSizeRuleSet, error) {
	args := m.Called(ctx, id, rules, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PackSizeRuleSet), args.Error(1)
}

func (m *MockPackSizesRepositoryInterface) List(ctx context.Context, limit int) ([]model.PackSizeRuleSet, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PackSizeRuleSet), args.Error(1)
}
