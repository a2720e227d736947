package fixture_test

import (
	"context"
	"testing"
	"time"

	"github.com/mart/ranking-admin/internal/domain"
	"github.com/mart/ranking-admin/internal/repository/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(items ...*domain.RankingItem) *fixture.Store {
	store := fixture.Empty()
	store.Seed([]*domain.Ranking{
		{ID: "r1", Title: "Ranking", Slug: "ranking", Status: domain.RankingStatusPublished},
	}, items)
	return store
}

func item(id string, position int) *domain.RankingItem {
	return &domain.RankingItem{
		ID:          id,
		RankingID:   "r1",
		Title:       "Title " + id,
		Description: "Description " + id,
		Position:    position,
	}
}

func TestItemRepository_GetByRankingID_IsIdempotent(t *testing.T) {
	repos := fixture.NewRepositories(seedStore(item("a", 1), item("b", 2)))
	ctx := context.Background()

	first, err := repos.Item.GetByRankingID(ctx, "r1")
	require.NoError(t, err)
	second, err := repos.Item.GetByRankingID(ctx, "r1")
	require.NoError(t, err)

	assert.Equal(t, first, second, "repeated reads must return identical data")
	assert.Len(t, first, 2)
}

func TestItemRepository_GetByRankingID_FiltersByRanking(t *testing.T) {
	store := seedStore(item("a", 1))
	other := &domain.RankingItem{ID: "x", RankingID: "r2", Title: "t", Description: "d", Position: 1}
	store.Seed([]*domain.Ranking{{ID: "r1", Slug: "ranking"}}, []*domain.RankingItem{item("a", 1), other})

	repos := fixture.NewRepositories(store)
	items, err := repos.Item.GetByRankingID(context.Background(), "r1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].ID)
}

func TestItemRepository_Create_Defaults(t *testing.T) {
	repos := fixture.NewRepositories(seedStore())
	ctx := context.Background()

	created := &domain.RankingItem{
		RankingID:   "r1",
		Title:       "New",
		Description: "New item",
	}
	require.NoError(t, repos.Item.Create(ctx, created))

	assert.NotEmpty(t, created.ID, "id is synthesized when unset")
	assert.Equal(t, 1, created.Position, "position defaults to 1")
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := repos.Item.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
}

func TestItemRepository_Update_RequiresFields(t *testing.T) {
	repos := fixture.NewRepositories(seedStore(item("a", 1)))
	ctx := context.Background()

	tests := []struct {
		name string
		item *domain.RankingItem
	}{
		{name: "missing id", item: &domain.RankingItem{RankingID: "r1", Title: "t", Description: "d"}},
		{name: "missing ranking id", item: &domain.RankingItem{ID: "a", Title: "t", Description: "d"}},
		{name: "missing title", item: &domain.RankingItem{ID: "a", RankingID: "r1", Description: "d"}},
		{name: "missing description", item: &domain.RankingItem{ID: "a", RankingID: "r1", Title: "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repos.Item.Update(ctx, tt.item)
			assert.ErrorIs(t, err, domain.ErrMissingFields)
		})
	}
}

func TestItemRepository_Update_StampsUpdatedAt(t *testing.T) {
	repos := fixture.NewRepositories(seedStore(item("a", 1)))
	ctx := context.Background()

	updated := item("a", 1)
	updated.Title = "Renamed"
	before := time.Now()
	require.NoError(t, repos.Item.Update(ctx, updated))
	assert.False(t, updated.UpdatedAt.Before(before))

	got, err := repos.Item.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
}

func TestItemRepository_Delete_AlwaysSucceeds(t *testing.T) {
	repos := fixture.NewRepositories(seedStore(item("a", 1)))
	ctx := context.Background()

	require.NoError(t, repos.Item.Delete(ctx, "a"))
	require.NoError(t, repos.Item.Delete(ctx, "a"), "deleting a missing item is not an error")
	require.NoError(t, repos.Item.Delete(ctx, "never-existed"))

	items, err := repos.Item.GetByRankingID(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemRepository_Reorder_AssignsIndexPlusOne(t *testing.T) {
	repos := fixture.NewRepositories(seedStore(item("a", 1), item("b", 2), item("c", 3)))
	ctx := context.Background()

	reordered, err := repos.Item.Reorder(ctx, "r1", []string{"c", "a", "b"})
	require.NoError(t, err)
	require.Len(t, reordered, 3)

	byID := make(map[string]int)
	for _, it := range reordered {
		byID[it.ID] = it.Position
	}
	assert.Equal(t, 1, byID["c"])
	assert.Equal(t, 2, byID["a"])
	assert.Equal(t, 3, byID["b"])
}

func TestItemRepository_Reorder_UnknownID(t *testing.T) {
	repos := fixture.NewRepositories(seedStore(item("a", 1)))

	_, err := repos.Item.Reorder(context.Background(), "r1", []string{"a", "ghost"})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestRankingRepository_Lookups(t *testing.T) {
	repos := fixture.NewRepositories(seedStore())
	ctx := context.Background()

	ranking, err := repos.Ranking.GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "ranking", ranking.Slug)

	bySlug, err := repos.Ranking.GetBySlug(ctx, "ranking")
	require.NoError(t, err)
	assert.Equal(t, "r1", bySlug.ID)

	_, err = repos.Ranking.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrRankingNotFound)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := fixture.Load("testdata/does-not-exist.json")
	assert.Error(t, err, "a missing fixture is the stub's transport failure")
}
