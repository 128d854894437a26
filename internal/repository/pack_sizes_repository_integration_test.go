//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/guttosm/college-order-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testRules(defaultSize, hat int) model.PackSizeRules {
	return model.PackSizeRules{
		Default:    defaultSize,
		Categories: map[string]int{"hat": hat, "tshirt/women": 8},
		Versions: map[string]map[model.Version]int{
			"tshirt/men": {model.VersionHoodie: 8, model.VersionCrewneck: 6},
		},
		NameRules:   []model.NameRule{{Contains: []string{"tie-dye", "tie dye"}, PackSize: 8}},
		AnyQuantity: []model.AnyQuantityRule{{CategoryPath: "bottle"}},
	}
}

func TestPackSizesRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := newTestDB(t)

	repo := NewPackSizesRepository(db)

	t.Run("get active when none exists", func(t *testing.T) {
		active, err := repo.GetActive(ctx)
		assert.NoError(t, err)
		assert.Nil(t, active)
	})

	t.Run("create stores the full rule table", func(t *testing.T) {
		set, err := repo.Create(ctx, testRules(7, 6), "admin")
		require.NoError(t, err)
		assert.True(t, set.Active)
		assert.Equal(t, 1, set.Version)
		assert.Equal(t, "admin", set.CreatedBy)

		active, err := repo.GetActive(ctx)
		require.NoError(t, err)
		require.NotNil(t, active)
		assert.Equal(t, testRules(7, 6), active.Rules)
	})

	t.Run("create new active deactivates old", func(t *testing.T) {
		old, err := repo.GetActive(ctx)
		require.NoError(t, err)

		created, err := repo.Create(ctx, testRules(7, 12), "admin")
		require.NoError(t, err)
		assert.Equal(t, old.Version+1, created.Version)

		active, err := repo.GetActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, created.ID, active.ID)
		assert.Equal(t, 12, active.Rules.Categories["hat"])
	})

	t.Run("update bumps version", func(t *testing.T) {
		active, err := repo.GetActive(ctx)
		require.NoError(t, err)

		updated, err := repo.Update(ctx, active.ID, testRules(6, 6), "editor")
		require.NoError(t, err)
		assert.Equal(t, active.Version+1, updated.Version)
		assert.Equal(t, 6, updated.Rules.Default)
		assert.Equal(t, "editor", updated.UpdatedBy)
	})

	t.Run("update unknown id", func(t *testing.T) {
		_, err := repo.Update(ctx, primitive.NewObjectID(), testRules(7, 6), "editor")
		assert.ErrorIs(t, err, ErrRuleSetNotFound)
	})

	t.Run("list newest first with limit", func(t *testing.T) {
		sets, err := repo.List(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, sets, 2)

		sets, err = repo.List(ctx, 1)
		require.NoError(t, err)
		require.Len(t, sets, 1)
		assert.True(t, sets[0].Active)
	})
}
