//go:build integration

package service

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/guttosm/college-order-service/internal/repository"
	"github.com/guttosm/college-order-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServiceDB(t *testing.T) *repository.MongoDB {
	t.Helper()
	db, err := repository.NewMongoDB(testutil.StartMongoDB(t), testutil.DatabaseName(t))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close(context.Background())
	})
	return db
}

func TestLoggingService_Integration(t *testing.T) {
	ctx := context.Background()
	db := setupServiceDB(t)
	require.NoError(t, db.SetLogsTTL(ctx, 30))

	logs := repository.NewLogsRepositoryWithCircuitBreaker(
		repository.NewLogsRepository(db),
		repository.NewCircuitBreaker("logs", 2, 100*time.Millisecond),
	)
	svc := NewLoggingService(logs)

	entry := &model.LogEntry{
		Level:      "info",
		Message:    "Order confirmed",
		RequestID:  "req-confirm",
		College:    "oregonuniversity",
		OrderID:    "ORD-20240301101500-AB12",
		ActionType: "confirm_order",
	}
	require.NoError(t, svc.CreateLog(ctx, entry))
	assert.False(t, entry.ID.IsZero())

	require.NoError(t, svc.CreateLogs(ctx, []*model.LogEntry{
		{Level: "info", Message: "Admin login", Actor: "admin", ActionType: "admin_login"},
		{Level: "error", Message: "Email failed", College: "oregonuniversity"},
	}))

	t.Run("query by college", func(t *testing.T) {
		entries, err := svc.QueryLogs(ctx, model.LogQueryOptions{College: "oregonuniversity"})
		require.NoError(t, err)
		assert.Len(t, entries, 2)
	})

	t.Run("query by action type", func(t *testing.T) {
		entries, err := svc.QueryLogs(ctx, model.LogQueryOptions{ActionType: "confirm_order"})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "ORD-20240301101500-AB12", entries[0].OrderID)
	})

	t.Run("count in time window", func(t *testing.T) {
		start := time.Now().Add(-time.Hour)
		end := time.Now().Add(time.Hour)
		count, err := svc.CountLogs(ctx, model.LogQueryOptions{StartTime: &start, EndTime: &end})
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})
}
