package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/guttosm/college-order-service/internal/logger"
	"github.com/guttosm/college-order-service/internal/service"
	"github.com/rs/zerolog"
)

// RequestLogger logs one line per request and, with a logging service,
// stores it for the admin log viewer. Stored entries go through the
// batching writer when one is installed.
func RequestLogger(loggingService service.LoggingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := &model.LogEntry{
			Timestamp:  time.Now(),
			Level:      levelForStatus(c.Writer.Status()),
			Message:    "HTTP request",
			RequestID:  GetRequestID(c),
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			StatusCode: c.Writer.Status(),
			Duration:   time.Since(start).Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
			Actor:      GetAdminSubject(c),
			College:    c.Param("college"),
			DraftID:    draftParam(c),
		}

		log := logger.Logger()
		log.WithLevel(zerologLevel(entry.Level)).
			Str("request_id", entry.RequestID).
			Str("method", entry.Method).
			Str("path", entry.Path).
			Int("status_code", entry.StatusCode).
			Int64("duration_ms", entry.Duration).
			Str("ip", entry.IP).
			Str("user_agent", entry.UserAgent).
			Str("college", entry.College).
			Str("draft_id", entry.DraftID).
			Str("actor", entry.Actor).
			Msg(entry.Message)

		if loggingService == nil {
			return
		}
		if w := GetAsyncLogger(); w != nil {
			w.Log(entry)
			return
		}
		storeLog(loggingService, entry)
	}
}

func levelForStatus(status int) string {
	switch {
	case status >= 500:
		return "error"
	case status >= 400:
		return "warn"
	default:
		return "info"
	}
}

func zerologLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}
