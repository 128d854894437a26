// Package middleware holds the gin middleware of the order service.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/guttosm/college-order-service/internal/logger"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key of the request ID.
const requestIDKey = "request_id"

const maxRequestIDLength = 64

// RequestID assigns the request ID that logs, audit entries and error
// bodies share. A client X-Request-ID is kept when it is at most 64
// printable ASCII characters; anything else is replaced by a UUID. The
// request context gets a logger tagged with the ID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if !validRequestID(id) {
			id = uuid.NewString()
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, ch := range []byte(id) {
		if ch < '!' || ch > '~' {
			return false
		}
	}
	return true
}

// GetRequestID returns the ID set by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
