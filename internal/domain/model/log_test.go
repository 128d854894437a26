package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogEntry_WithFields(t *testing.T) {
	tests := []struct {
		name        string
		entry       LogEntry
		fields      map[string]interface{}
		wantFields  map[string]interface{}
		wantOrderID string
	}{
		{
			name:       "nil fields leave the entry alone",
			entry:      LogEntry{Message: "login"},
			wantFields: nil,
		},
		{
			name:       "merges over existing fields",
			entry:      LogEntry{Fields: map[string]interface{}{"old_status": "pending", "notes": "x"}},
			fields:     map[string]interface{}{"new_status": "completed", "notes": "shipped"},
			wantFields: map[string]interface{}{"old_status": "pending", "new_status": "completed", "notes": "shipped"},
		},
		{
			name:        "order id is promoted",
			fields:      map[string]interface{}{"order_id": "ORD-7"},
			wantFields:  map[string]interface{}{"order_id": "ORD-7"},
			wantOrderID: "ORD-7",
		},
		{
			name:        "explicit order id wins",
			entry:       LogEntry{OrderID: "ORD-1"},
			fields:      map[string]interface{}{"order_id": "ORD-2"},
			wantFields:  map[string]interface{}{"order_id": "ORD-2"},
			wantOrderID: "ORD-1",
		},
		{
			name:       "non-string order id stays a field",
			fields:     map[string]interface{}{"order_id": 12},
			wantFields: map[string]interface{}{"order_id": 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := tt.entry
			assert.Same(t, &entry, entry.WithFields(tt.fields))
			assert.Equal(t, tt.wantFields, entry.Fields)
			assert.Equal(t, tt.wantOrderID, entry.OrderID)
		})
	}
}

func TestLogEntry_WithFieldsCopies(t *testing.T) {
	fields := map[string]interface{}{"college": "michiganstate"}
	var entry LogEntry
	entry.WithFields(fields)

	fields["college"] = "arizonastate"
	assert.Equal(t, "michiganstate", entry.Fields["college"])
}
