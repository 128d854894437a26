package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/domain/dto"
	"github.com/guttosm/college-order-service/internal/i18n"
	"github.com/guttosm/college-order-service/internal/logger"
)

// ErrorHandler logs the errors handlers attach to the gin context and
// answers for the ones that left the response unwritten.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		last := c.Errors.Last()

		status := c.Writer.Status()
		code, key := "", ""
		if !c.Writer.Written() {
			status, code, key = classifyError(last)
		}

		log := logger.Logger()
		event := log.Error()
		if status < http.StatusInternalServerError {
			event = log.Warn()
		}
		event.
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Int("errors", len(c.Errors)).
			Err(last.Err).
			Msg("Request error")

		if key != "" {
			abortWithKey(c, status, code, key)
		}
	}
}

// classifyError maps an unanswered error to a status, code and message key.
func classifyError(err *gin.Error) (int, string, string) {
	switch {
	case err.IsType(gin.ErrorTypeBind):
		return http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidRequestBody
	case errors.Is(err.Err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, dto.ErrCodeTimeout, i18n.ErrKeyTimeout
	default:
		return http.StatusInternalServerError, dto.ErrCodeInternal, i18n.ErrKeyInternalError
	}
}
