package service

import (
	"context"
	"errors"
	"time"

	"github.com/guttosm/college-order-service/internal/cache"
	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/guttosm/college-order-service/internal/repository"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrRepositoryNotConfigured is returned when the repository is not configured.
var ErrRepositoryNotConfigured = errors.New("repository not configured")

const activePolicyKey = "active"

// PackSizesService manages stored pack size rule sets and serves the
// policy currently in force.
type PackSizesService interface {
	GetActive(ctx context.Context) (*model.PackSizeRuleSet, error)
	Create(ctx context.Context, rules model.PackSizeRules, createdBy string) (*model.PackSizeRuleSet, error)
	Update(ctx context.Context, id primitive.ObjectID, rules model.PackSizeRules, updatedBy string) (*model.PackSizeRuleSet, error)
	List(ctx context.Context, limit int) ([]model.PackSizeRuleSet, error)
	// Policy returns the active policy, or the built-in one when nothing
	// is stored or storage is unavailable.
	Policy(ctx context.Context) *PackPolicy
}

// PackSizesServiceImpl implements PackSizesService.
type PackSizesServiceImpl struct {
	packSizesRepo repository.PackSizesRepositoryInterface
	policies      cache.Cache[*PackPolicy]
	defaults      *PackPolicy
}

// NewPackSizesService creates a pack sizes service. The active policy is
// cached for policyTTL; a nil repo serves the built-in rules only.
func NewPackSizesService(packSizesRepo repository.PackSizesRepositoryInterface, policyTTL time.Duration) *PackSizesServiceImpl {
	if policyTTL <= 0 {
		policyTTL = time.Minute
	}
	return &PackSizesServiceImpl{
		packSizesRepo: packSizesRepo,
		policies:      cache.NewSharded[*PackPolicy]("pack_policy", 1, policyTTL, 1),
		defaults:      NewPackPolicy(DefaultPackSizeRules()),
	}
}

func (s *PackSizesServiceImpl) GetActive(ctx context.Context) (*model.PackSizeRuleSet, error) {
	if s.packSizesRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.packSizesRepo.GetActive(ctx)
}

func (s *PackSizesServiceImpl) Create(ctx context.Context, rules model.PackSizeRules, createdBy string) (*model.PackSizeRuleSet, error) {
	if s.packSizesRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	set, err := s.packSizesRepo.Create(ctx, rules, createdBy)
	if err != nil {
		return nil, err
	}
	s.policies.Invalidate(activePolicyKey)
	return set, nil
}

func (s *PackSizesServiceImpl) Update(ctx context.Context, id primitive.ObjectID, rules model.PackSizeRules, updatedBy string) (*model.PackSizeRuleSet, error) {
	if s.packSizesRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	set, err := s.packSizesRepo.Update(ctx, id, rules, updatedBy)
	if err != nil {
		return nil, err
	}
	s.policies.Invalidate(activePolicyKey)
	return set, nil
}

func (s *PackSizesServiceImpl) List(ctx context.Context, limit int) ([]model.PackSizeRuleSet, error) {
	if s.packSizesRepo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.packSizesRepo.List(ctx, limit)
}

func (s *PackSizesServiceImpl) Policy(ctx context.Context) *PackPolicy {
	if s.packSizesRepo == nil {
		return s.defaults
	}
	if policy, ok := s.policies.Get(activePolicyKey); ok {
		return policy
	}

	set, err := s.packSizesRepo.GetActive(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load active pack size rules, using defaults")
		return s.defaults
	}

	policy := s.defaults
	if set != nil {
		policy = NewPackPolicy(set.Rules)
	}
	s.policies.Set(activePolicyKey, policy)
	return policy
}

// Stop releases the policy cache.
func (s *PackSizesServiceImpl) Stop() {
	s.policies.Stop()
}
