package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/guttosm/college-order-service/internal/i18n"
	"github.com/guttosm/college-order-service/internal/service"
)

const maxLogsPerPage = 500

// LogsHandler exposes stored request and audit logs to the administrator.
type LogsHandler struct {
	logs service.LoggingService
}

// NewLogsHandler creates a new LogsHandler.
func NewLogsHandler(logs service.LoggingService) *LogsHandler {
	return &LogsHandler{logs: logs}
}

// LogsPage is one page of stored log entries.
type LogsPage struct {
	Entries []model.LogEntry `json:"entries"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Skip    int              `json:"skip"`
}

// QueryLogs handles GET /api/v1/admin/logs requests.
//
// @Summary      Query logs
// @Description  Returns stored request and audit logs, newest first.
// @Tags         Admin
// @Produce      json
// @Param        request_id query string false "Request id"
// @Param        level query string false "Level" Enums(debug, info, warn, error)
// @Param        college query string false "College id"
// @Param        action query string false "Audit action type" example(order_confirmed)
// @Param        from query string false "RFC 3339 start time"
// @Param        to query string false "RFC 3339 end time"
// @Param        limit query int false "Page size, at most 500" default(100)
// @Param        skip query int false "Entries to skip"
// @Success      200 {object} dto.SuccessResponse{data=LogsPage} "Log entries"
// @Failure      400 {object} dto.ErrorResponse "Malformed time or invalid filter"
// @Failure      401 {object} dto.ErrorResponse "Missing or invalid token"
// @Security     BearerAuth
// @Router       /api/v1/admin/logs [get]
func (h *LogsHandler) QueryLogs(c *gin.Context) {
	builder := NewResponseBuilder(c)

	opts := model.LogQueryOptions{
		RequestID:  c.Query("request_id"),
		Level:      c.Query("level"),
		College:    c.Query("college"),
		ActionType: c.Query("action"),
		Limit:      queryInt(c, "limit"),
		Skip:       queryInt(c, "skip"),
	}
	if opts.Limit == 0 {
		opts.Limit = 100
	}
	if opts.Limit > maxLogsPerPage {
		opts.Limit = maxLogsPerPage
	}
	for name, target := range map[string]**time.Time{"from": &opts.StartTime, "to": &opts.EndTime} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
			return
		}
		*target = &ts
	}

	ctx := c.Request.Context()
	entries, err := h.logs.QueryLogs(ctx, opts)
	if err != nil {
		respondError(c, err)
		return
	}
	total, err := h.logs.CountLogs(ctx, opts)
	if err != nil {
		respondError(c, err)
		return
	}

	builder.SuccessOK(LogsPage{Entries: entries, Total: total, Limit: opts.Limit, Skip: opts.Skip})
}
