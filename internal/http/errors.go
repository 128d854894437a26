package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/circuitbreaker"
	"github.com/guttosm/college-order-service/internal/collegeapi"
	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/guttosm/college-order-service/internal/i18n"
	"github.com/guttosm/college-order-service/internal/repository"
	"github.com/guttosm/college-order-service/internal/service"
)

// statusFor maps a domain error to an HTTP status and a message key.
func statusFor(err error) (int, string) {
	var apiErr *collegeapi.APIError

	switch {
	case errors.Is(err, service.ErrUnknownCollege), errors.Is(err, collegeapi.ErrCollegeNotFound):
		return http.StatusNotFound, i18n.ErrKeyCollegeNotFound
	case errors.Is(err, service.ErrDraftNotFound), errors.Is(err, repository.ErrDraftNotFound):
		return http.StatusNotFound, i18n.ErrKeyDraftNotFound
	case errors.Is(err, repository.ErrOrderNotFound):
		return http.StatusNotFound, i18n.ErrKeyOrderNotFound
	case errors.Is(err, repository.ErrRuleSetNotFound):
		return http.StatusNotFound, i18n.ErrKeyNotFound
	case errors.Is(err, service.ErrUnknownAction):
		return http.StatusNotFound, i18n.ErrKeyNotFound

	case errors.Is(err, service.ErrFormInvalid):
		return http.StatusUnprocessableEntity, i18n.ErrKeyValidationFailed
	case errors.Is(err, service.ErrEmptyOrder):
		return http.StatusUnprocessableEntity, i18n.ErrKeyEmptyOrder

	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrNotEditable),
		errors.Is(err, service.ErrAlreadySubmitted):
		return http.StatusConflict, i18n.ErrKeyInvalidTransition

	case errors.Is(err, model.ErrUnknownProduct),
		errors.Is(err, model.ErrAxisMismatch),
		errors.Is(err, model.ErrNegativeQuantity),
		errors.Is(err, model.ErrQuantityTooLarge),
		errors.Is(err, model.ErrUnknownVersion),
		errors.Is(err, model.ErrUnknownOption),
		errors.Is(err, service.ErrUnknownMutation):
		return http.StatusBadRequest, i18n.ErrKeyInvalidMutation
	case errors.Is(err, model.ErrInvalidPackRules):
		return http.StatusBadRequest, i18n.ErrKeyInvalidPackRules
	case errors.Is(err, model.ErrInvalidOrderStatus):
		return http.StatusBadRequest, i18n.ErrKeyInvalidOrderStatus
	case errors.Is(err, collegeapi.ErrInvalidImageURL):
		return http.StatusBadRequest, i18n.ErrKeyInvalidImageURL
	case errors.Is(err, collegeapi.ErrMissingTemplateID),
		errors.Is(err, service.ErrInvalidLogQuery):
		return http.StatusBadRequest, i18n.ErrKeyInvalidRequest

	case errors.Is(err, service.ErrEmailFailed):
		return http.StatusBadGateway, i18n.ErrKeyEmailFailed
	case errors.As(err, &apiErr):
		return http.StatusBadGateway, i18n.ErrKeyUpstreamFailed

	case errors.Is(err, service.ErrRepositoryNotConfigured),
		errors.Is(err, collegeapi.ErrNotConfigured),
		errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return http.StatusServiceUnavailable, i18n.ErrKeyServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, i18n.ErrKeyTimeout
	}
	return http.StatusInternalServerError, i18n.ErrKeyInternalError
}

// respondError writes the error response for err. Upstream failures carry
// the APIError as details.
func respondError(c *gin.Context, err error) {
	status, key := statusFor(err)
	builder := NewResponseBuilder(c)

	var apiErr *collegeapi.APIError
	if errors.As(err, &apiErr) {
		builder.ErrorWithDetails(status, key, map[string]interface{}{"upstream": apiErr}, err)
		return
	}
	builder.Error(status, key, err)
}

// respondDraftError writes the error of a draft operation. When the
// operation produced a view, as a rejected submit or a failed email does,
// the view is attached so the storefront can show what went wrong.
func respondDraftError(c *gin.Context, view *service.DraftView, err error) {
	if view == nil {
		respondError(c, err)
		return
	}
	status, key := statusFor(err)
	NewResponseBuilder(c).ErrorWithDetails(status, key, map[string]interface{}{
		"validation": view.Validation,
		"draft":      view,
	}, err)
}
