package service_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/mart/ranking-admin/internal/cache"
	"github.com/mart/ranking-admin/internal/domain"
	"github.com/mart/ranking-admin/internal/repository"
	"github.com/mart/ranking-admin/internal/repository/fixture"
	"github.com/mart/ranking-admin/internal/service"
	"github.com/mart/ranking-admin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingItemRepo wraps an ItemRepository and counts list reads, so tests
// can tell a cache hit from a refetch.
type countingItemRepo struct {
	repository.ItemRepository
	listCalls int32
}

func (r *countingItemRepo) GetByRankingID(ctx context.Context, rankingID string) ([]*domain.RankingItem, error) {
	atomic.AddInt32(&r.listCalls, 1)
	return r.ItemRepository.GetByRankingID(ctx, rankingID)
}

func (r *countingItemRepo) ListCalls() int32 {
	return atomic.LoadInt32(&r.listCalls)
}

func newItemService(t *testing.T, n int) (*service.ItemService, *countingItemRepo, []*domain.RankingItem) {
	t.Helper()

	store := fixture.Empty()
	_, items := testutil.SeedRanking(t, store, "r1", n)
	repos := fixture.NewRepositories(store)
	counting := &countingItemRepo{ItemRepository: repos.Item}
	svc := service.NewItemService(repos.Ranking, counting, cache.NewStore(), nil)
	return svc, counting, items
}

func TestItemService_ListItems_SortedByPosition(t *testing.T) {
	store := fixture.Empty()
	store.Seed([]*domain.Ranking{{ID: "r1", Slug: "r1"}}, []*domain.RankingItem{
		{ID: "c", RankingID: "r1", Title: "t", Description: "d", Position: 3},
		{ID: "a", RankingID: "r1", Title: "t", Description: "d", Position: 1},
		{ID: "b", RankingID: "r1", Title: "t", Description: "d", Position: 2},
	})
	repos := fixture.NewRepositories(store)
	svc := service.NewItemService(repos.Ranking, repos.Item, cache.NewStore(), nil)

	items, err := svc.ListItems(context.Background(), "r1")
	require.NoError(t, err)
	testutil.AssertOrder(t, items, []string{"a", "b", "c"})
}

func TestItemService_CreateItem_DefaultPositionAppends(t *testing.T) {
	svc, _, seeded := newItemService(t, 3)
	ctx := context.Background()

	created, err := svc.CreateItem(ctx, service.CreateItemInput{
		RankingID:   "r1",
		Title:       "New",
		Description: "Appended",
	})
	require.NoError(t, err)
	assert.Equal(t, len(seeded)+1, created.Position)

	items, err := svc.ListItems(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, items, 4)
	testutil.AssertContiguousPositions(t, items)
	assert.Equal(t, created.ID, items[len(items)-1].ID)
}

func TestItemService_CreateItem_FirstItemGetsPositionOne(t *testing.T) {
	svc, _, _ := newItemService(t, 0)

	created, err := svc.CreateItem(context.Background(), service.CreateItemInput{
		RankingID:   "r1",
		Title:       "Only",
		Description: "First",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created.Position)
}

func TestItemService_CreateItem_ExplicitPositionShiftsRest(t *testing.T) {
	svc, _, _ := newItemService(t, 3)
	ctx := context.Background()

	position := 2
	created, err := svc.CreateItem(ctx, service.CreateItemInput{
		RankingID:   "r1",
		Title:       "Inserted",
		Description: "Mid-list",
		Position:    &position,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, created.Position)

	items, err := svc.ListItems(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, items, 4)
	testutil.AssertContiguousPositions(t, items)
	testutil.AssertOrder(t, items, []string{"r1-item-1", created.ID, "r1-item-2", "r1-item-3"})
}

func TestItemService_CreateItem_PositionOutOfRange(t *testing.T) {
	svc, _, _ := newItemService(t, 3)

	for _, position := range []int{-1, 0, 5} {
		p := position
		_, err := svc.CreateItem(context.Background(), service.CreateItemInput{
			RankingID:   "r1",
			Title:       "Bad",
			Description: "Out of range",
			Position:    &p,
		})
		assert.ErrorIs(t, err, domain.ErrPositionOutOfRange, "position %d", position)
	}
}

func TestItemService_CreateItem_MissingFields(t *testing.T) {
	svc, _, _ := newItemService(t, 1)

	_, err := svc.CreateItem(context.Background(), service.CreateItemInput{RankingID: "r1"})
	assert.ErrorIs(t, err, domain.ErrMissingFields)
}

func TestItemService_CreateItem_UnknownRanking(t *testing.T) {
	svc, _, _ := newItemService(t, 1)

	_, err := svc.CreateItem(context.Background(), service.CreateItemInput{
		RankingID:   "ghost",
		Title:       "t",
		Description: "d",
	})
	assert.ErrorIs(t, err, domain.ErrRankingNotFound)
}

func TestItemService_UpdateItem_PatchesCacheWithoutRefetch(t *testing.T) {
	svc, counting, _ := newItemService(t, 3)
	ctx := context.Background()

	_, err := svc.ListItems(ctx, "r1")
	require.NoError(t, err)
	callsAfterLoad := counting.ListCalls()

	_, err = svc.UpdateItem(ctx, service.UpdateItemInput{
		ID:          "r1-item-2",
		RankingID:   "r1",
		Title:       "Renamed",
		Description: "Updated",
	})
	require.NoError(t, err)

	items, err := svc.ListItems(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, callsAfterLoad, counting.ListCalls(), "update must patch the cache, not refetch")

	var found bool
	for _, item := range items {
		if item.ID == "r1-item-2" {
			found = true
			assert.Equal(t, "Renamed", item.Title)
		}
	}
	require.True(t, found)
	testutil.AssertContiguousPositions(t, items)
}

func TestItemService_UpdateItem_PositionMoveRenumbers(t *testing.T) {
	svc, _, _ := newItemService(t, 4)
	ctx := context.Background()

	position := 1
	_, err := svc.UpdateItem(ctx, service.UpdateItemInput{
		ID:          "r1-item-3",
		RankingID:   "r1",
		Title:       "Moved",
		Description: "To the top",
		Position:    &position,
	})
	require.NoError(t, err)

	items, err := svc.ListItems(ctx, "r1")
	require.NoError(t, err)
	testutil.AssertContiguousPositions(t, items)
	testutil.AssertOrder(t, items, []string{"r1-item-3", "r1-item-1", "r1-item-2", "r1-item-4"})
}

func TestItemService_UpdateItem_MissingFields(t *testing.T) {
	svc, _, _ := newItemService(t, 1)

	_, err := svc.UpdateItem(context.Background(), service.UpdateItemInput{
		ID:        "r1-item-1",
		RankingID: "r1",
		Title:     "no description",
	})
	assert.ErrorIs(t, err, domain.ErrMissingFields)
}

func TestItemService_DeleteItem_ClosesGap(t *testing.T) {
	svc, _, _ := newItemService(t, 5)
	ctx := context.Background()

	// Delete the item at position 2; 3..5 must shift to 2..4.
	require.NoError(t, svc.DeleteItem(ctx, "r1-item-2"))

	items, err := svc.ListItems(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, items, 4)
	testutil.AssertContiguousPositions(t, items)
	testutil.AssertOrder(t, items, []string{"r1-item-1", "r1-item-3", "r1-item-4", "r1-item-5"})
}

func TestItemService_DeleteItem_LastRemaining(t *testing.T) {
	svc, _, _ := newItemService(t, 1)
	ctx := context.Background()

	require.NoError(t, svc.DeleteItem(ctx, "r1-item-1"))

	items, err := svc.ListItems(ctx, "r1")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestItemService_DeleteItem_Unknown(t *testing.T) {
	svc, _, _ := newItemService(t, 1)
	err := svc.DeleteItem(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestItemService_MoveUp_TopIsNoop(t *testing.T) {
	svc, _, _ := newItemService(t, 3)
	ctx := context.Background()

	items, err := svc.MoveUp(ctx, "r1-item-1")
	require.NoError(t, err)
	testutil.AssertOrder(t, items, []string{"r1-item-1", "r1-item-2", "r1-item-3"})
}

func TestItemService_MoveDown_BottomIsNoop(t *testing.T) {
	svc, _, _ := newItemService(t, 3)
	ctx := context.Background()

	items, err := svc.MoveDown(ctx, "r1-item-3")
	require.NoError(t, err)
	testutil.AssertOrder(t, items, []string{"r1-item-1", "r1-item-2", "r1-item-3"})
}

// The move construction keeps unaffected items in front and appends the
// swapped pair at the end of the sequence, so moving "b" up over [a b c]
// yields [c a b], not the in-place swap [b a c]. Positions stay contiguous
// either way.
func TestItemService_MoveUp_AppendsPairAtEnd(t *testing.T) {
	svc, _, _ := newItemService(t, 3)
	ctx := context.Background()

	items, err := svc.MoveUp(ctx, "r1-item-2")
	require.NoError(t, err)
	require.Len(t, items, 3)
	testutil.AssertContiguousPositions(t, items)
	testutil.AssertOrder(t, items, []string{"r1-item-3", "r1-item-1", "r1-item-2"})
}

func TestItemService_MoveDown_AppendsPairAtEnd(t *testing.T) {
	svc, _, _ := newItemService(t, 3)
	ctx := context.Background()

	items, err := svc.MoveDown(ctx, "r1-item-1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	testutil.AssertContiguousPositions(t, items)
	testutil.AssertOrder(t, items, []string{"r1-item-3", "r1-item-1", "r1-item-2"})
}

func TestItemService_Reorder_AssignsContiguousPositions(t *testing.T) {
	svc, _, _ := newItemService(t, 4)
	ctx := context.Background()

	items, err := svc.ReorderItems(ctx, "r1", []string{"r1-item-4", "r1-item-2", "r1-item-1", "r1-item-3"})
	require.NoError(t, err)
	testutil.AssertContiguousPositions(t, items)
	testutil.AssertOrder(t, items, []string{"r1-item-4", "r1-item-2", "r1-item-1", "r1-item-3"})
}

func TestItemService_Reorder_RejectsNonPermutations(t *testing.T) {
	svc, _, _ := newItemService(t, 3)
	ctx := context.Background()

	tests := []struct {
		name    string
		itemIDs []string
	}{
		{name: "missing id", itemIDs: []string{"r1-item-1", "r1-item-2"}},
		{name: "duplicate id", itemIDs: []string{"r1-item-1", "r1-item-2", "r1-item-2"}},
		{name: "unknown id", itemIDs: []string{"r1-item-1", "r1-item-2", "ghost"}},
		{name: "extra id", itemIDs: []string{"r1-item-1", "r1-item-2", "r1-item-3", "r1-item-4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ReorderItems(ctx, "r1", tt.itemIDs)
			assert.ErrorIs(t, err, domain.ErrNotAPermutation)
		})
	}
}

func TestItemService_MutationsKeepPositionsContiguous(t *testing.T) {
	svc, _, _ := newItemService(t, 3)
	ctx := context.Background()

	position := 2
	_, err := svc.CreateItem(ctx, service.CreateItemInput{
		RankingID: "r1", Title: "x", Description: "y", Position: &position,
	})
	require.NoError(t, err)

	_, err = svc.MoveUp(ctx, "r1-item-3")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, "r1-item-1"))

	items, err := svc.ListItems(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, items, 3)
	testutil.AssertContiguousPositions(t, items)
}
