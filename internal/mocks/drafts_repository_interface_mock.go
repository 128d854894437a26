// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockDraftsRepositoryInterface struct {
	mock.Mock
}

func (m *MockDraftsRepositoryInterface) Load(ctx context.Context, college, id string) (*model.Draft, error) {
	args := m.Called(ctx, college, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Draft), args.Error(1)
}

func (m *MockDraftsRepositoryInterface) Save(ctx context.Context, draft *model.Draft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftsRepositoryInterface) Delete(ctx context.Context, college, id string) error {
	args := m.Called(ctx, college, id)
	return args.Error(0)
}
