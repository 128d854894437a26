package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/domain/dto"
	"github.com/guttosm/college-order-service/internal/i18n"
	"github.com/guttosm/college-order-service/internal/middleware"
)

// ErrEmptyBody is returned when a JSON endpoint receives no body.
var ErrEmptyBody = errors.New("request body is required")

var (
	successResponsePool = sync.Pool{New: func() interface{} { return &dto.SuccessResponse{} }}
	errorResponsePool   = sync.Pool{New: func() interface{} { return &dto.ErrorResponse{} }}
)

// Validator is implemented by request DTOs that check themselves after
// binding.
type Validator interface {
	Validate() error
}

// BuildRequestAndValidate binds the JSON body into a T and runs its
// Validate method when it has one. Decoding errors are rewritten to name
// the offending field, and are tagged as bind errors on the context.
func BuildRequestAndValidate[T any](c *gin.Context) (*T, error) {
	var req T
	if err := c.ShouldBindJSON(&req); err != nil {
		err = describeBindError(err)
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return nil, err
	}
	if v, ok := any(&req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

func describeBindError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return ErrEmptyBody
	case errors.As(err, &syntaxErr):
		return fmt.Errorf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return fmt.Errorf("%s: expected %s, got %s", typeErr.Field, typeErr.Type, typeErr.Value)
	}
	return err
}

// ResponseBuilder writes the standard success and error envelopes. The
// envelopes come from a pool; gin serializes synchronously so they are
// returned right after the write.
type ResponseBuilder struct {
	c *gin.Context
}

// NewResponseBuilder creates a new response builder for the given context.
func NewResponseBuilder(c *gin.Context) *ResponseBuilder {
	return &ResponseBuilder{c: c}
}

func (b *ResponseBuilder) success(status int, data interface{}) {
	resp, _ := successResponsePool.Get().(*dto.SuccessResponse)
	if resp == nil {
		resp = &dto.SuccessResponse{}
	}
	resp.Data = data
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	b.c.JSON(status, resp)

	*resp = dto.SuccessResponse{}
	successResponsePool.Put(resp)
}

// SuccessOK sends a 200 OK response with the given data.
func (b *ResponseBuilder) SuccessOK(data interface{}) {
	b.success(http.StatusOK, data)
}

// SuccessCreated sends a 201 Created response with the given data.
func (b *ResponseBuilder) SuccessCreated(data interface{}) {
	b.success(http.StatusCreated, data)
}

func (b *ResponseBuilder) fail(status int, message string, details map[string]interface{}, err error) {
	resp, _ := errorResponsePool.Get().(*dto.ErrorResponse)
	if resp == nil {
		resp = &dto.ErrorResponse{}
	}
	resp.Error = dto.ErrCodeFromStatus(status)
	resp.Message = message
	resp.Details = details
	resp.RequestID = middleware.GetRequestID(b.c)
	resp.Timestamp = time.Now()

	// Attached for the error handler to log.
	if err != nil && !b.alreadyAttached(err) {
		_ = b.c.Error(err)
	}
	b.c.AbortWithStatusJSON(status, resp)

	*resp = dto.ErrorResponse{}
	errorResponsePool.Put(resp)
}

func (b *ResponseBuilder) alreadyAttached(err error) bool {
	for _, e := range b.c.Errors {
		if e.Err == err {
			return true
		}
	}
	return false
}

// Error sends a translated error response.
func (b *ResponseBuilder) Error(status int, messageKey string, err error) {
	b.fail(status, i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c)), nil, err)
}

// ErrorWithMessage sends an error response with a literal message, used
// for request validation errors that already name the field.
func (b *ResponseBuilder) ErrorWithMessage(status int, message string, err error) {
	b.fail(status, message, nil, err)
}

// ErrorWithDetails sends a translated error response carrying details, such
// as the validation result of a rejected submit.
func (b *ResponseBuilder) ErrorWithDetails(status int, messageKey string, details map[string]interface{}, err error) {
	b.fail(status, i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(b.c)), details, err)
}
