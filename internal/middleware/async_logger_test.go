//go:build !integration

package middleware

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// batchRecorder is a LoggingService that keeps every batch it receives.
type batchRecorder struct {
	mu      sync.Mutex
	batches [][]*model.LogEntry
	err     error
	block   chan struct{}
}

func (r *batchRecorder) CreateLog(ctx context.Context, entry *model.LogEntry) error {
	return r.CreateLogs(ctx, []*model.LogEntry{entry})
}

func (r *batchRecorder) CreateLogs(_ context.Context, entries []*model.LogEntry) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, entries)
	return r.err
}

func (r *batchRecorder) QueryLogs(context.Context, model.LogQueryOptions) ([]model.LogEntry, error) {
	return nil, nil
}

func (r *batchRecorder) CountLogs(context.Context, model.LogQueryOptions) (int64, error) {
	return 0, nil
}

func (r *batchRecorder) sizes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, len(r.batches))
	for i, b := range r.batches {
		out[i] = len(b)
	}
	return out
}

func testEntry(msg string) *model.LogEntry {
	return &model.LogEntry{Level: "info", Message: msg, College: "michiganstate"}
}

func TestDefaultAsyncLoggerConfig(t *testing.T) {
	cfg := DefaultAsyncLoggerConfig()

	assert.Equal(t, 1000, cfg.BufferSize)
	assert.Equal(t, 2, cfg.NumWorkers)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, time.Second, cfg.FlushInterval)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
}

func TestNewAsyncLogger(t *testing.T) {
	t.Run("nil logging service returns nil", func(t *testing.T) {
		assert.Nil(t, NewAsyncLogger(nil, DefaultAsyncLoggerConfig()))
	})

	t.Run("zero config falls back to defaults", func(t *testing.T) {
		al := NewAsyncLogger(&batchRecorder{}, AsyncLoggerConfig{})
		require.NotNil(t, al)
		defer al.Stop()

		assert.Equal(t, 50, al.batchSize)
		assert.Equal(t, time.Second, al.flushInterval)
		assert.Equal(t, 1000, cap(al.entryCh))
	})
}

func TestAsyncLogger_Batching(t *testing.T) {
	tests := []struct {
		name      string
		cfg       AsyncLoggerConfig
		entries   int
		wantSizes []int
	}{
		{
			name:      "full batches flush without waiting for the interval",
			cfg:       AsyncLoggerConfig{BufferSize: 10, NumWorkers: 1, BatchSize: 3, FlushInterval: time.Hour},
			entries:   6,
			wantSizes: []int{3, 3},
		},
		{
			name:      "partial batch flushes on the interval",
			cfg:       AsyncLoggerConfig{BufferSize: 10, NumWorkers: 1, BatchSize: 50, FlushInterval: 20 * time.Millisecond},
			entries:   2,
			wantSizes: []int{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &batchRecorder{}
			al := NewAsyncLogger(rec, tt.cfg)
			defer al.Stop()

			for i := 0; i < tt.entries; i++ {
				require.True(t, al.Log(testEntry("GET /api/v1/colleges")))
			}

			assert.Eventually(t, func() bool {
				_, _, written, _ := al.Stats()
				return written == int64(tt.entries)
			}, time.Second, 5*time.Millisecond)
			assert.Equal(t, tt.wantSizes, rec.sizes())
		})
	}
}

func TestAsyncLogger_DropsWhenQueueFull(t *testing.T) {
	rec := &batchRecorder{block: make(chan struct{})}
	al := NewAsyncLogger(rec, AsyncLoggerConfig{BufferSize: 2, NumWorkers: 1, BatchSize: 1, FlushInterval: time.Hour})

	dropped := 0
	for i := 0; i < 10; i++ {
		if !al.Log(testEntry("POST /drafts")) {
			dropped++
		}
	}
	assert.Greater(t, dropped, 0)

	close(rec.block)
	al.Stop()

	enqueued, droppedStat, written, _ := al.Stats()
	assert.Equal(t, int64(dropped), droppedStat)
	assert.Equal(t, enqueued, written)
}

func TestAsyncLogger_FailedBatchCountsEntries(t *testing.T) {
	rec := &batchRecorder{err: errors.New("mongo unavailable")}
	al := NewAsyncLogger(rec, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 1, BatchSize: 3, FlushInterval: time.Hour})

	for i := 0; i < 3; i++ {
		al.Log(testEntry("GET /healthz"))
	}
	al.Stop()

	_, _, written, failed := al.Stats()
	assert.Equal(t, int64(0), written)
	assert.Equal(t, int64(3), failed)
}

func TestAsyncLogger_StopFlushesQueue(t *testing.T) {
	rec := &batchRecorder{}
	al := NewAsyncLogger(rec, AsyncLoggerConfig{BufferSize: 100, NumWorkers: 4, BatchSize: 50, FlushInterval: time.Hour})

	for i := 0; i < 10; i++ {
		al.Log(testEntry("PATCH /drafts/1"))
	}
	al.Stop()
	al.Stop()

	_, _, written, _ := al.Stats()
	assert.Equal(t, int64(10), written)
}

func TestGlobalAsyncLogger(t *testing.T) {
	StopAsyncLogger()
	assert.Nil(t, GetAsyncLogger())

	InitAsyncLogger(&batchRecorder{}, DefaultAsyncLoggerConfig())
	first := GetAsyncLogger()
	require.NotNil(t, first)
	assert.True(t, first.Log(testEntry("GET /api/v1/colleges")))

	InitAsyncLogger(&batchRecorder{}, DefaultAsyncLoggerConfig())
	second := GetAsyncLogger()
	assert.NotSame(t, first, second)

	_, _, written, _ := first.Stats()
	assert.Equal(t, int64(1), written, "replaced writer flushes before it goes")

	StopAsyncLogger()
	assert.Nil(t, GetAsyncLogger())
	StopAsyncLogger()
}

func TestAsyncLogger_StopLeavesNoWorkers(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	al := NewAsyncLogger(&batchRecorder{}, AsyncLoggerConfig{BufferSize: 10, NumWorkers: 3, BatchSize: 5, FlushInterval: time.Second})
	al.Log(testEntry("draft saved"))
	al.Stop()
}
