//go:build !integration

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/guttosm/college-order-service/internal/circuitbreaker"
	"github.com/guttosm/college-order-service/internal/collegeapi"
	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/guttosm/college-order-service/internal/i18n"
	"github.com/guttosm/college-order-service/internal/repository"
	"github.com/guttosm/college-order-service/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKey    string
	}{
		{name: "unknown college", err: fmt.Errorf("%w: nowhere", service.ErrUnknownCollege), wantStatus: http.StatusNotFound, wantKey: i18n.ErrKeyCollegeNotFound},
		{name: "upstream college", err: collegeapi.ErrCollegeNotFound, wantStatus: http.StatusNotFound, wantKey: i18n.ErrKeyCollegeNotFound},
		{name: "draft", err: service.ErrDraftNotFound, wantStatus: http.StatusNotFound, wantKey: i18n.ErrKeyDraftNotFound},
		{name: "stored draft", err: repository.ErrDraftNotFound, wantStatus: http.StatusNotFound, wantKey: i18n.ErrKeyDraftNotFound},
		{name: "order", err: repository.ErrOrderNotFound, wantStatus: http.StatusNotFound, wantKey: i18n.ErrKeyOrderNotFound},
		{name: "rule set", err: repository.ErrRuleSetNotFound, wantStatus: http.StatusNotFound, wantKey: i18n.ErrKeyNotFound},
		{name: "action", err: service.ErrUnknownAction, wantStatus: http.StatusNotFound, wantKey: i18n.ErrKeyNotFound},
		{name: "invalid form", err: service.ErrFormInvalid, wantStatus: http.StatusUnprocessableEntity, wantKey: i18n.ErrKeyValidationFailed},
		{name: "empty order", err: service.ErrEmptyOrder, wantStatus: http.StatusUnprocessableEntity, wantKey: i18n.ErrKeyEmptyOrder},
		{name: "transition", err: service.ErrInvalidTransition, wantStatus: http.StatusConflict, wantKey: i18n.ErrKeyInvalidTransition},
		{name: "not editable", err: service.ErrNotEditable, wantStatus: http.StatusConflict, wantKey: i18n.ErrKeyInvalidTransition},
		{name: "already submitted", err: service.ErrAlreadySubmitted, wantStatus: http.StatusConflict, wantKey: i18n.ErrKeyInvalidTransition},
		{name: "unknown product", err: fmt.Errorf("%w: hat/x.png", model.ErrUnknownProduct), wantStatus: http.StatusBadRequest, wantKey: i18n.ErrKeyInvalidMutation},
		{name: "axis mismatch", err: model.ErrAxisMismatch, wantStatus: http.StatusBadRequest, wantKey: i18n.ErrKeyInvalidMutation},
		{name: "negative quantity", err: model.ErrNegativeQuantity, wantStatus: http.StatusBadRequest, wantKey: i18n.ErrKeyInvalidMutation},
		{name: "quantity too large", err: fmt.Errorf("%w: size S has 200000", model.ErrQuantityTooLarge), wantStatus: http.StatusBadRequest, wantKey: i18n.ErrKeyInvalidMutation},
		{name: "unknown mutation", err: service.ErrUnknownMutation, wantStatus: http.StatusBadRequest, wantKey: i18n.ErrKeyInvalidMutation},
		{name: "pack rules", err: model.ErrInvalidPackRules, wantStatus: http.StatusBadRequest, wantKey: i18n.ErrKeyInvalidPackRules},
		{name: "order status", err: model.ErrInvalidOrderStatus, wantStatus: http.StatusBadRequest, wantKey: i18n.ErrKeyInvalidOrderStatus},
		{name: "image url", err: collegeapi.ErrInvalidImageURL, wantStatus: http.StatusBadRequest, wantKey: i18n.ErrKeyInvalidImageURL},
		{name: "log query", err: fmt.Errorf("%w: end before start", service.ErrInvalidLogQuery), wantStatus: http.StatusBadRequest, wantKey: i18n.ErrKeyInvalidRequest},
		{name: "email", err: fmt.Errorf("%w: smtp down", service.ErrEmailFailed), wantStatus: http.StatusBadGateway, wantKey: i18n.ErrKeyEmailFailed},
		{name: "upstream", err: &collegeapi.APIError{Message: "Failed", Status: 500}, wantStatus: http.StatusBadGateway, wantKey: i18n.ErrKeyUpstreamFailed},
		{name: "storage disabled", err: service.ErrRepositoryNotConfigured, wantStatus: http.StatusServiceUnavailable, wantKey: i18n.ErrKeyServiceUnavailable},
		{name: "upstream disabled", err: collegeapi.ErrNotConfigured, wantStatus: http.StatusServiceUnavailable, wantKey: i18n.ErrKeyServiceUnavailable},
		{name: "breaker open", err: circuitbreaker.ErrCircuitOpen, wantStatus: http.StatusServiceUnavailable, wantKey: i18n.ErrKeyServiceUnavailable},
		{name: "deadline", err: context.DeadlineExceeded, wantStatus: http.StatusGatewayTimeout, wantKey: i18n.ErrKeyTimeout},
		{name: "anything else", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantKey: i18n.ErrKeyInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, key := statusFor(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}
