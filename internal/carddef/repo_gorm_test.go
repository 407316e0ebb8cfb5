package carddef

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reskin/backend/internal/cost"
	"reskin/backend/internal/database/dbtest"
	"reskin/backend/internal/models"
)

func TestGormRepositoryRoundTrip(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()
	store := NewStore(NewGormRepository(db))

	require.NoError(t, store.SeedTokenCards(ctx, []TokenCard{
		{ID: 3, Token: cost.Red, Tier: 3, Points: 4, Cost: cost.Vector{Green: 7}},
		{ID: 1, Token: cost.Blue, Tier: 1, Cost: cost.Vector{White: 1, Black: 2}},
		{ID: 2, Token: cost.White, Tier: 2, Points: 1, Cost: cost.Vector{Red: 3}},
	}))
	require.NoError(t, store.SeedDiscoveryCards(ctx, []DiscoveryCard{{ID: 9, Points: 3, Cost: cost.Vector{Blue: 4, Red: 4}}}))

	defs, err := store.ListDefinitions(ctx, "TokenEngineCardDefinition", OrderDefault, Filter{})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids(defs))
	assert.Equal(t, cost.Vector{White: 1, Black: 2}, defs[0].DefinitionCost())

	// Reseeding updates in place.
	require.NoError(t, store.SeedTokenCards(ctx, []TokenCard{{ID: 1, Token: cost.Blue, Tier: 1, Points: 2}}))
	defs, err = store.List(ctx, TokenCards, OrderID, Filter{})
	require.NoError(t, err)
	require.Len(t, defs, 3)
	assert.Equal(t, 2, defs[0].DefinitionPoints())

	missing, err := store.MissingIDs(ctx, TokenCards, []int64{1, 3, 9, 77})
	require.NoError(t, err)
	assert.Equal(t, []int64{9, 77}, missing)

	missing, err = store.MissingIDs(ctx, DiscoveryCards, []int64{9})
	require.NoError(t, err)
	assert.Empty(t, missing)

	// A malformed stored cost decodes to zero instead of failing the listing.
	require.NoError(t, db.Model(&models.TokenEngineDiscoveryCardDefinition{}).Where("id = ?", 9).
		Update("cost", `{"WHITE": "lots"}`).Error)
	defs, err = store.List(ctx, DiscoveryCards, OrderDefault, Filter{})
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, cost.Vector{}, defs[0].DefinitionCost())
}
