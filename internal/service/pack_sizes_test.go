//go:build !integration

package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/guttosm/college-order-service/internal/mocks"
	"github.com/guttosm/college-order-service/internal/service"
)

func hatRules(size int) model.PackSizeRules {
	return model.PackSizeRules{Default: 7, Categories: map[string]int{"hat": size}}
}

func newPackSizesService(t *testing.T, repo *mocks.MockPackSizesRepositoryInterface) *service.PackSizesServiceImpl {
	t.Helper()
	var svc *service.PackSizesServiceImpl
	if repo == nil {
		svc = service.NewPackSizesService(nil, time.Minute)
	} else {
		svc = service.NewPackSizesService(repo, time.Minute)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestPackSizesService_GetActive(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(*mocks.MockPackSizesRepositoryInterface)
		expectedError error
		expectedHat   int
	}{
		{
			name: "successful get active",
			setupMock: func(m *mocks.MockPackSizesRepositoryInterface) {
				set := &model.PackSizeRuleSet{
					ID:        primitive.NewObjectID(),
					Rules:     hatRules(12),
					Active:    true,
					Version:   1,
					CreatedAt: time.Now(),
					UpdatedAt: time.Now(),
				}
				m.On("GetActive", mock.Anything).Return(set, nil)
			},
			expectedHat: 12,
		},
		{
			name: "no active rule set",
			setupMock: func(m *mocks.MockPackSizesRepositoryInterface) {
				m.On("GetActive", mock.Anything).Return(nil, nil)
			},
		},
		{
			name: "repository error",
			setupMock: func(m *mocks.MockPackSizesRepositoryInterface) {
				m.On("GetActive", mock.Anything).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockPackSizesRepositoryInterface)
			tt.setupMock(mockRepo)

			svc := newPackSizesService(t, mockRepo)
			set, err := svc.GetActive(context.Background())

			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}
			if tt.expectedHat != 0 {
				require.NotNil(t, set)
				assert.Equal(t, tt.expectedHat, set.Rules.Categories["hat"])
			} else {
				assert.Nil(t, set)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPackSizesService_NilRepository(t *testing.T) {
	svc := newPackSizesService(t, nil)
	ctx := context.Background()

	_, err := svc.GetActive(ctx)
	assert.Equal(t, service.ErrRepositoryNotConfigured, err)
	_, err = svc.Create(ctx, hatRules(6), "admin")
	assert.Equal(t, service.ErrRepositoryNotConfigured, err)
	_, err = svc.Update(ctx, primitive.NewObjectID(), hatRules(6), "admin")
	assert.Equal(t, service.ErrRepositoryNotConfigured, err)
	_, err = svc.List(ctx, 10)
	assert.Equal(t, service.ErrRepositoryNotConfigured, err)

	policy := svc.Policy(ctx)
	assert.Equal(t, service.DefaultPackSizeRules(), policy.Rules())
}

func TestPackSizesService_Create(t *testing.T) {
	tests := []struct {
		name          string
		rules         model.PackSizeRules
		setupMock     func(*mocks.MockPackSizesRepositoryInterface)
		expectedError string
	}{
		{
			name:  "successful create",
			rules: hatRules(12),
			setupMock: func(m *mocks.MockPackSizesRepositoryInterface) {
				m.On("Create", mock.Anything, hatRules(12), "admin").
					Return(&model.PackSizeRuleSet{ID: primitive.NewObjectID(), Rules: hatRules(12), Active: true, Version: 2}, nil)
			},
		},
		{
			name:          "invalid rules never reach the repository",
			rules:         hatRules(0),
			setupMock:     func(*mocks.MockPackSizesRepositoryInterface) {},
			expectedError: "invalid pack size rules",
		},
		{
			name:  "repository error",
			rules: hatRules(6),
			setupMock: func(m *mocks.MockPackSizesRepositoryInterface) {
				m.On("Create", mock.Anything, hatRules(6), "admin").Return(nil, errors.New("duplicate key"))
			},
			expectedError: "duplicate key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockPackSizesRepositoryInterface)
			tt.setupMock(mockRepo)

			svc := newPackSizesService(t, mockRepo)
			set, err := svc.Create(context.Background(), tt.rules, "admin")

			if tt.expectedError != "" {
				assert.ErrorContains(t, err, tt.expectedError)
				assert.Nil(t, set)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.rules, set.Rules)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPackSizesService_Update(t *testing.T) {
	id := primitive.NewObjectID()
	mockRepo := new(mocks.MockPackSizesRepositoryInterface)
	mockRepo.On("Update", mock.Anything, id, hatRules(8), "admin").
		Return(&model.PackSizeRuleSet{ID: id, Rules: hatRules(8), Version: 3}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("primitive.ObjectID"), hatRules(6), "admin").
		Return(nil, errors.New("not found"))

	svc := newPackSizesService(t, mockRepo)

	set, err := svc.Update(context.Background(), id, hatRules(8), "admin")
	require.NoError(t, err)
	assert.Equal(t, 3, set.Version)

	_, err = svc.Update(context.Background(), primitive.NewObjectID(), hatRules(6), "admin")
	assert.EqualError(t, err, "not found")
}

func TestPackSizesService_List(t *testing.T) {
	mockRepo := new(mocks.MockPackSizesRepositoryInterface)
	mockRepo.On("List", mock.Anything, 10).Return([]model.PackSizeRuleSet{
		{ID: primitive.NewObjectID(), Rules: hatRules(6), Active: true},
		{ID: primitive.NewObjectID(), Rules: hatRules(12)},
	}, nil)

	svc := newPackSizesService(t, mockRepo)
	sets, err := svc.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, sets, 2)
}

func TestPackSizesService_PolicyIsCachedAndInvalidated(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(mocks.MockPackSizesRepositoryInterface)
	mockRepo.On("GetActive", mock.Anything).Return(&model.PackSizeRuleSet{Rules: hatRules(12), Active: true}, nil).Once()

	svc := newPackSizesService(t, mockRepo)
	assert.Equal(t, 12, svc.Policy(ctx).PackSize("hat", "", ""))
	assert.Equal(t, 12, svc.Policy(ctx).PackSize("hat", "", ""))
	mockRepo.AssertNumberOfCalls(t, "GetActive", 1)

	mockRepo.On("Create", mock.Anything, hatRules(4), "admin").Return(&model.PackSizeRuleSet{Rules: hatRules(4), Active: true}, nil)
	mockRepo.On("GetActive", mock.Anything).Return(&model.PackSizeRuleSet{Rules: hatRules(4), Active: true}, nil).Once()
	_, err := svc.Create(ctx, hatRules(4), "admin")
	require.NoError(t, err)

	assert.Equal(t, 4, svc.Policy(ctx).PackSize("hat", "", ""))
	mockRepo.AssertNumberOfCalls(t, "GetActive", 2)
}

func TestPackSizesService_PolicyFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()

	failing := new(mocks.MockPackSizesRepositoryInterface)
	failing.On("GetActive", mock.Anything).Return(nil, errors.New("connection refused"))
	assert.Equal(t, 6, newPackSizesService(t, failing).Policy(ctx).PackSize("hat", "", ""))

	empty := new(mocks.MockPackSizesRepositoryInterface)
	empty.On("GetActive", mock.Anything).Return(nil, nil)
	assert.Equal(t, 8, newPackSizesService(t, empty).Policy(ctx).PackSize("tshirt/women", "", ""))
}
