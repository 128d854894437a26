package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/domain/dto"
	"github.com/guttosm/college-order-service/internal/i18n"
	"github.com/guttosm/college-order-service/internal/logger"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter fallback, needed by <img> tags
	// that load through the image proxy and cannot send headers.
	APIKeyQuery = "api_key"
)

// APIKeyAuth guards the upstream routes. An empty key set disables the check.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	keys := make([][]byte, 0, len(validKeys))
	for k, ok := range validKeys {
		if ok && k != "" {
			keys = append(keys, []byte(k))
		}
	}

	return func(c *gin.Context) {
		if len(keys) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}
		if key == "" {
			rejectAPIKey(c, i18n.ErrKeyAPIKeyRequired)
			return
		}
		if !matchesAny([]byte(key), keys) {
			rejectAPIKey(c, i18n.ErrKeyInvalidAPIKey)
			return
		}
		c.Next()
	}
}

// matchesAny compares against every key so timing does not reveal
// which one matched.
func matchesAny(key []byte, keys [][]byte) bool {
	found := 0
	for _, k := range keys {
		found |= subtle.ConstantTimeCompare(key, k)
	}
	return found == 1
}

func rejectAPIKey(c *gin.Context, key string) {
	log := logger.Logger()
	log.Warn().
		Str("request_id", GetRequestID(c)).
		Str("path", c.Request.URL.Path).
		Str("client_ip", c.ClientIP()).
		Str("reason", key).
		Msg("Upstream request rejected")
	abortWithKey(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, key)
}
