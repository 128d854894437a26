package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogEntry is one stored request or audit event. Request entries carry
// the HTTP columns; audit entries add Actor, ActionType and Fields.
type LogEntry struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	Timestamp  time.Time              `bson:"timestamp" json:"timestamp"`
	Level      string                 `bson:"level" json:"level"`
	Message    string                 `bson:"message" json:"message"`
	RequestID  string                 `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Method     string                 `bson:"method,omitempty" json:"method,omitempty"`
	Path       string                 `bson:"path,omitempty" json:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty" json:"status_code,omitempty"`
	Duration   int64                  `bson:"duration_ms,omitempty" json:"duration_ms,omitempty"`
	IP         string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent  string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Error      string                 `bson:"error,omitempty" json:"error,omitempty"`
	Actor      string                 `bson:"actor,omitempty" json:"actor,omitempty"`
	College    string                 `bson:"college,omitempty" json:"college,omitempty"`
	DraftID    string                 `bson:"draft_id,omitempty" json:"draft_id,omitempty"`
	OrderID    string                 `bson:"order_id,omitempty" json:"order_id,omitempty"`
	ActionType string                 `bson:"action_type,omitempty" json:"action_type,omitempty"` // e.g. "admin_login", "order_status", "confirm_order"
	Fields     map[string]interface{} `bson:"fields,omitempty" json:"fields,omitempty"`
}

// WithFields copies fields into the entry. An "order_id" string field
// also fills OrderID so audit events are queryable by order.
func (e *LogEntry) WithFields(fields map[string]interface{}) *LogEntry {
	if len(fields) == 0 {
		return e
	}
	if e.Fields == nil {
		e.Fields = make(map[string]interface{}, len(fields))
	}
	for k, v := range fields {
		e.Fields[k] = v
	}
	if id, ok := fields["order_id"].(string); ok && e.OrderID == "" {
		e.OrderID = id
	}
	return e
}

// LogQueryOptions filters stored log entries.
type LogQueryOptions struct {
	RequestID  string
	Level      string
	College    string
	ActionType string
	StartTime  *time.Time
	EndTime    *time.Time
	Limit      int
	Skip       int
}
