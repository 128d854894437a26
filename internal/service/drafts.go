package service

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/guttosm/college-order-service/internal/cache"
	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/guttosm/college-order-service/internal/email"
	"github.com/guttosm/college-order-service/internal/logger"
	"github.com/guttosm/college-order-service/internal/metrics"
	"github.com/guttosm/college-order-service/internal/repository"
	"github.com/rs/zerolog/log"
)

// MsgEmailFailed is shown when the order email could not be sent.
const MsgEmailFailed = "There was an error submitting your order. Please try again."

var (
	// ErrUnknownCollege is returned for a college that is not in the catalog.
	ErrUnknownCollege = errors.New("college not found")
	// ErrDraftNotFound is returned when a draft does not exist or has expired.
	ErrDraftNotFound = errors.New("draft not found")
	// ErrUnknownAction is returned for an unsupported draft action.
	ErrUnknownAction = errors.New("unknown draft action")
	// ErrEmailFailed is returned when the order email could not be sent.
	ErrEmailFailed = errors.New("order email failed")
)

// DraftAction is a page transition requested by the storefront.
type DraftAction string

const (
	ActionSubmit        DraftAction = "submit"
	ActionBack          DraftAction = "back"
	ActionConfirm       DraftAction = "confirm"
	ActionBackToSummary DraftAction = "back-to-summary"
	ActionExit          DraftAction = "exit"
)

// CollegeLookup resolves a college id to its catalog.
type CollegeLookup interface {
	College(id string) (model.College, bool)
}

// DraftView is a draft together with everything derived from it.
//
// @Description Draft order with its validation state
type DraftView struct {
	Draft             model.Draft            `json:"draft"`
	Route             string                 `json:"route" example:"/michiganstate/summary"`
	Validation        model.ValidationResult `json:"validation"`
	ValidProductPaths []string               `json:"valid_product_paths"`
	TotalUnits        int                    `json:"total_units" example:"42"`
}

// DraftService owns the lifecycle of draft orders.
type DraftService interface {
	Create(ctx context.Context, college string) (*DraftView, error)
	Get(ctx context.Context, college, id string) (*DraftView, error)
	Apply(ctx context.Context, college, id string, store *model.StoreInfoPatch, mutations []model.FormMutation) (*DraftView, error)
	Validate(ctx context.Context, college, id string) (*DraftView, error)
	Transition(ctx context.Context, college, id string, action DraftAction, host string) (*DraftView, error)
	Delete(ctx context.Context, college, id string) error
}

// DraftServiceConfig configures a DraftServiceImpl.
type DraftServiceConfig struct {
	// ProviderEmail is copied into every order email.
	ProviderEmail string
	// CacheCapacity and CacheTTL size the live draft cache.
	CacheCapacity int
	CacheTTL      time.Duration
}

const lockStripes = 64

// DraftServiceImpl implements DraftService. Live drafts are kept in a
// sharded cache and written through to the optional store; store errors
// are logged and never fail the request. Requests on the same draft are
// serialized by a striped lock.
type DraftServiceImpl struct {
	colleges  CollegeLookup
	packSizes PackSizesService
	orders    OrderService
	sender    email.Sender
	store     repository.DraftsRepositoryInterface
	live      cache.Cache[model.Draft]
	locks     [lockStripes]sync.Mutex
	cfg       DraftServiceConfig
	now       func() time.Time
}

// NewDraftService creates a draft service. store may be nil, in which
// case drafts live only in memory.
func NewDraftService(
	colleges CollegeLookup,
	packSizes PackSizesService,
	orders OrderService,
	sender email.Sender,
	store repository.DraftsRepositoryInterface,
	cfg DraftServiceConfig,
) *DraftServiceImpl {
	if cfg.CacheCapacity <= 0 {
		cfg.CacheCapacity = 10000
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return &DraftServiceImpl{
		colleges:  colleges,
		packSizes: packSizes,
		orders:    orders,
		sender:    sender,
		store:     store,
		live:      cache.NewSharded[model.Draft]("drafts", cfg.CacheCapacity, cfg.CacheTTL, 16),
		cfg:       cfg,
		now:       time.Now,
	}
}

// Stop releases the live draft cache.
func (s *DraftServiceImpl) Stop() {
	s.live.Stop()
}

func (s *DraftServiceImpl) lock(key string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	mu := &s.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

func (s *DraftServiceImpl) college(id string) (model.College, error) {
	college, ok := s.colleges.College(id)
	if !ok {
		return model.College{}, fmt.Errorf("%w: %s", ErrUnknownCollege, id)
	}
	return college, nil
}

func (s *DraftServiceImpl) load(ctx context.Context, college, id string) (model.Draft, error) {
	key := model.DraftKey(college, id)
	if draft, ok := s.live.Get(key); ok {
		draft.Form = draft.Form.Clone()
		return draft, nil
	}
	if s.store == nil {
		return model.Draft{}, ErrDraftNotFound
	}

	stored, err := s.store.Load(ctx, college, id)
	if errors.Is(err, repository.ErrDraftNotFound) {
		return model.Draft{}, ErrDraftNotFound
	}
	if err != nil {
		return model.Draft{}, err
	}
	s.live.Set(key, *stored)
	draft := *stored
	draft.Form = stored.Form.Clone()
	return draft, nil
}

func (s *DraftServiceImpl) save(ctx context.Context, draft model.Draft) {
	s.live.Set(draft.Key(), draft)
	if s.store == nil {
		return
	}
	if err := s.store.Save(ctx, &draft); err != nil {
		l := logger.ForDraft(ctx, draft.College, draft.ID)
		l.Warn().Err(err).Msg("Failed to persist draft")
	}
}

func (s *DraftServiceImpl) remove(ctx context.Context, college, id string) {
	s.live.Invalidate(model.DraftKey(college, id))
	if s.store == nil {
		return
	}
	if err := s.store.Delete(ctx, college, id); err != nil {
		l := logger.ForDraft(ctx, college, id)
		l.Warn().Err(err).Msg("Failed to delete draft")
	}
}

func viewOf(form *OrderForm) *DraftView {
	draft := form.Draft()
	return &DraftView{
		Draft:             draft,
		Route:             form.Route(),
		Validation:        form.Validation(),
		ValidProductPaths: form.ValidProductPaths(),
		TotalUnits:        OrderedUnits(draft.Form, form.college),
	}
}

// open loads a draft under its lock and wraps it in an OrderForm. The
// returned release func must be called when done.
func (s *DraftServiceImpl) open(ctx context.Context, collegeID, id string) (*OrderForm, func(), error) {
	college, err := s.college(collegeID)
	if err != nil {
		return nil, nil, err
	}
	release := s.lock(model.DraftKey(collegeID, id))
	draft, err := s.load(ctx, collegeID, id)
	if err != nil {
		release()
		return nil, nil, err
	}
	return NewOrderForm(college, s.packSizes.Policy(ctx), draft), release, nil
}

// Create starts an empty draft dated today.
func (s *DraftServiceImpl) Create(ctx context.Context, collegeID string) (*DraftView, error) {
	college, err := s.college(collegeID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	draft := model.Draft{
		ID:        uuid.NewString(),
		College:   college.ID,
		Page:      model.PageForm,
		Form:      model.NewFormData(now.Format("2006-01-02")),
		CreatedAt: now,
		UpdatedAt: now,
	}
	form := NewOrderForm(college, s.packSizes.Policy(ctx), draft)
	s.save(ctx, form.Draft())
	return viewOf(form), nil
}

// Get returns a draft and its current validation.
func (s *DraftServiceImpl) Get(ctx context.Context, college, id string) (*DraftView, error) {
	form, release, err := s.open(ctx, college, id)
	if err != nil {
		return nil, err
	}
	defer release()
	return viewOf(form), nil
}

// Apply updates the store fields and applies mutations in order. The batch
// is all or nothing: on the first failing mutation nothing is saved.
func (s *DraftServiceImpl) Apply(ctx context.Context, college, id string, store *model.StoreInfoPatch, mutations []model.FormMutation) (*DraftView, error) {
	form, release, err := s.open(ctx, college, id)
	if err != nil {
		return nil, err
	}
	defer release()

	if store != nil {
		if err := form.UpdateStoreInfo(*store); err != nil {
			return nil, err
		}
	}
	for i, m := range mutations {
		if err := form.Apply(m); err != nil {
			return nil, fmt.Errorf("mutation %d (%s %s): %w", i, m.Op, m.Path, err)
		}
	}
	s.save(ctx, form.Draft())
	return viewOf(form), nil
}

// Validate runs the full submit checks without changing page.
func (s *DraftServiceImpl) Validate(ctx context.Context, collegeID, id string) (*DraftView, error) {
	form, release, err := s.open(ctx, collegeID, id)
	if err != nil {
		return nil, err
	}
	defer release()

	college, _ := s.colleges.College(collegeID)
	view := viewOf(form)
	view.Validation = ValidateFormData(view.Draft.Form, college, s.packSizes.Policy(ctx))
	view.ValidProductPaths = ValidProductPaths(view.Draft.Form, college, view.Validation)
	return view, nil
}

// Transition moves a draft between pages. On a rejected submit or a
// failed confirmation the returned view explains why alongside the error.
func (s *DraftServiceImpl) Transition(ctx context.Context, college, id string, action DraftAction, host string) (*DraftView, error) {
	form, release, err := s.open(ctx, college, id)
	if err != nil {
		return nil, err
	}
	defer release()

	switch action {
	case ActionSubmit:
		if _, err := form.Submit(); err != nil {
			if errors.Is(err, ErrFormInvalid) {
				metrics.RecordValidationFailure(college)
			}
			return viewOf(form), err
		}
	case ActionBack:
		err = form.Back()
	case ActionBackToSummary:
		err = form.BackToSummary()
	case ActionConfirm:
		return s.confirm(ctx, form, host)
	case ActionExit:
		if err := form.Exit(); err != nil {
			return nil, err
		}
		s.remove(ctx, college, id)
		return viewOf(form), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if err != nil {
		return nil, err
	}

	s.save(ctx, form.Draft())
	return viewOf(form), nil
}

// confirm sends the order email and records the order. The email is the
// submission; a failure to store the order afterwards is only logged.
func (s *DraftServiceImpl) confirm(ctx context.Context, form *OrderForm, host string) (*DraftView, error) {
	if err := form.BeginConfirm(); err != nil {
		if errors.Is(err, ErrEmptyOrder) {
			s.save(ctx, form.Draft())
			return viewOf(form), err
		}
		return nil, err
	}

	draft := form.Draft()
	college, _ := s.colleges.College(draft.College)
	params := CreateTemplateParams(draft.Form, college, s.cfg.ProviderEmail)

	if err := s.sender.Send(ctx, params, host); err != nil {
		metrics.RecordEmail("failed")
		l := logger.ForDraft(ctx, draft.College, draft.ID)
		l.Error().Err(err).Msg("Failed to send order email")
		form.FailConfirm(MsgEmailFailed)
		s.save(ctx, form.Draft())
		return viewOf(form), fmt.Errorf("%w: %v", ErrEmailFailed, err)
	}
	metrics.RecordEmail("sent")

	// The provider has the order now; recording it must not be cut short
	// by the request deadline.
	ctx = context.WithoutCancel(ctx)

	now := s.now().UTC()
	units := model.CalculateTotalUnits(params.Categories)
	order := &model.Order{
		ID:             NewOrderID(now),
		College:        college.ID,
		SchoolName:     college.Name,
		Store:          draft.Form.Store,
		Status:         model.OrderStatusPending,
		TotalItems:     units,
		Lines:          OrderLines(draft.Form, college),
		Form:           draft.Form,
		TemplateParams: params,
		EmailSent:      true,
		CreatedAt:      now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		if errors.Is(err, ErrRepositoryNotConfigured) {
			log.Warn().Str("order_id", order.ID).Msg("Order storage disabled, order kept in email only")
		} else {
			log.Error().Err(err).Str("order_id", order.ID).Msg("Failed to store order")
		}
	}

	metrics.RecordOrderSubmitted(college.ID, units)
	log.Info().
		Str("order_id", order.ID).
		Str("college", college.ID).
		Int("total_units", units).
		Msg("Order confirmed")

	form.CompleteConfirm(order.ID)
	s.save(ctx, form.Draft())
	return viewOf(form), nil
}

// Delete discards a draft.
func (s *DraftServiceImpl) Delete(ctx context.Context, college, id string) error {
	if _, err := s.college(college); err != nil {
		return err
	}
	release := s.lock(model.DraftKey(college, id))
	defer release()
	if _, err := s.load(ctx, college, id); err != nil {
		return err
	}
	s.remove(ctx, college, id)
	return nil
}
