// Package middleware provides audit logging utilities.
package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/guttosm/college-order-service/internal/logger"
	"github.com/guttosm/college-order-service/internal/service"
)

// AuditLog records an administrative or order action. The entry always
// goes to the console log and is stored when loggingService is set.
func AuditLog(loggingService service.LoggingService, c *gin.Context, actionType string, message string, fields map[string]interface{}) {
	entry := newAuditEntry(c, "info", actionType, message, fields)
	logger.Info().
		Str("request_id", entry.RequestID).
		Str("action", actionType).
		Str("actor", entry.Actor).
		Str("college", entry.College).
		Fields(fields).
		Msg(message)
	storeLog(loggingService, entry)
}

// AuditLogError records a failed action for audit purposes.
func AuditLogError(loggingService service.LoggingService, c *gin.Context, actionType string, message string, err error, fields map[string]interface{}) {
	entry := newAuditEntry(c, "error", actionType, message, fields)
	if err != nil {
		entry.Error = err.Error()
	}
	logger.Warn().
		Err(err).
		Str("request_id", entry.RequestID).
		Str("action", actionType).
		Str("actor", entry.Actor).
		Str("college", entry.College).
		Fields(fields).
		Msg(message)
	storeLog(loggingService, entry)
}

func newAuditEntry(c *gin.Context, level, actionType, message string, fields map[string]interface{}) *model.LogEntry {
	entry := &model.LogEntry{
		Timestamp:  time.Now().UTC(),
		Level:      level,
		Message:    message,
		RequestID:  GetRequestID(c),
		Method:     c.Request.Method,
		Path:       c.Request.URL.Path,
		IP:         c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
		Actor:      GetAdminSubject(c),
		College:    c.Param("college"),
		DraftID:    draftParam(c),
		ActionType: actionType,
	}
	return entry.WithFields(fields)
}

// draftParam returns the draft id of college-scoped routes. Other routes
// use :id for orders and rule sets.
func draftParam(c *gin.Context) string {
	if c.Param("college") == "" {
		return ""
	}
	return c.Param("id")
}

// storeLog writes one entry in the background. Audit entries take this
// path so they are never dropped by a full request log queue.
func storeLog(loggingService service.LoggingService, entry *model.LogEntry) {
	if loggingService == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}
