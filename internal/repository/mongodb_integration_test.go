//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/college-order-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoDB_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := NewMongoDB(testutil.MongoURI(t), testutil.DatabaseName(t))
	require.NoError(t, err)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	t.Run("collections are wired", func(t *testing.T) {
		assert.Equal(t, "orders", db.Orders.Name())
		assert.Equal(t, "drafts", db.Drafts.Name())
		assert.Equal(t, "pack_size_rules", db.PackSizeRules.Name())
		assert.Equal(t, "logs", db.Logs.Name())
	})

	t.Run("health check", func(t *testing.T) {
		assert.NoError(t, db.HealthCheck(ctx))
	})

	t.Run("TTL indexes can be replaced", func(t *testing.T) {
		require.NoError(t, db.SetLogsTTL(ctx, 30))
		require.NoError(t, db.SetLogsTTL(ctx, 60))
		require.NoError(t, db.SetDraftsTTL(ctx, 24*time.Hour))
		require.NoError(t, db.SetDraftsTTL(ctx, 48*time.Hour))

		specs, err := db.Logs.Indexes().ListSpecifications(ctx)
		require.NoError(t, err)
		expiry := map[string]int32{}
		for _, spec := range specs {
			if spec.ExpireAfterSeconds != nil {
				expiry[spec.Name] = *spec.ExpireAfterSeconds
			}
		}
		assert.Equal(t, map[string]int32{"ttl_timestamp": 60 * 24 * 3600}, expiry)
	})

	t.Run("zero TTL keeps documents", func(t *testing.T) {
		require.NoError(t, db.SetDraftsTTL(ctx, 0))

		specs, err := db.Drafts.Indexes().ListSpecifications(ctx)
		require.NoError(t, err)
		for _, spec := range specs {
			assert.NotEqual(t, "ttl_updated_at", spec.Name)
		}
	})

	t.Run("secondary indexes are named", func(t *testing.T) {
		specs, err := db.Orders.Indexes().ListSpecifications(ctx)
		require.NoError(t, err)
		var names []string
		for _, spec := range specs {
			names = append(names, spec.Name)
		}
		assert.ElementsMatch(t, []string{"_id_", "college_recent", "status_recent"}, names)
	})

	t.Run("unreachable server", func(t *testing.T) {
		cfg := DefaultMongoConfig()
		cfg.ConnectTimeout = 500 * time.Millisecond
		cfg.ServerSelectionTimeout = 500 * time.Millisecond
		_, err := NewMongoDBWithConfig("mongodb://127.0.0.1:1", "unreachable", cfg)
		assert.Error(t, err)
	})
}
