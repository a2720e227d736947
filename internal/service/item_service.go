package service

import (
	"context"

	"github.com/mart/ranking-admin/internal/cache"
	"github.com/mart/ranking-admin/internal/domain"
	"github.com/mart/ranking-admin/internal/repository"
)

// ItemsNotifier receives the authoritative item list after every successful
// mutation so connected dashboards can converge without polling.
type ItemsNotifier interface {
	BroadcastItemsChanged(rankingID string, items []*domain.RankingItem)
}

type noopNotifier struct{}

func (noopNotifier) BroadcastItemsChanged(string, []*domain.RankingItem) {}

type ItemService struct {
	rankingRepo repository.RankingRepository
	itemRepo    repository.ItemRepository
	cache       *cache.Store
	notifier    ItemsNotifier
}

func NewItemService(rankingRepo repository.RankingRepository, itemRepo repository.ItemRepository, store *cache.Store, notifier ItemsNotifier) *ItemService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &ItemService{
		rankingRepo: rankingRepo,
		itemRepo:    itemRepo,
		cache:       store,
		notifier:    notifier,
	}
}

// ListItems returns a ranking's items sorted by position, serving from the
// cache when fresh.
func (s *ItemService) ListItems(ctx context.Context, rankingID string) ([]*domain.RankingItem, error) {
	return cache.Fetch(ctx, s.cache, cache.ItemsKey(rankingID), func(ctx context.Context) ([]*domain.RankingItem, error) {
		items, err := s.itemRepo.GetByRankingID(ctx, rankingID)
		if err != nil {
			return nil, err
		}
		domain.SortItemsByPosition(items)
		return items, nil
	})
}

type CreateItemInput struct {
	RankingID   string
	Title       string
	Description string
	ImageURL    string
	Metadata    domain.Metadata
	Position    *int
}

// CreateItem inserts a new item. Without an explicit position the item is
// appended at len(items)+1; an explicit position must lie in [1, len+1] and
// shifts the items at and below it down by one.
func (s *ItemService) CreateItem(ctx context.Context, input CreateItemInput) (*domain.RankingItem, error) {
	if input.RankingID == "" || input.Title == "" || input.Description == "" {
		return nil, domain.ErrMissingFields
	}
	if _, err := s.rankingRepo.GetByID(ctx, input.RankingID); err != nil {
		return nil, err
	}

	current, err := s.ListItems(ctx, input.RankingID)
	if err != nil {
		return nil, err
	}

	position := len(current) + 1
	if input.Position != nil {
		position = *input.Position
		if position < 1 || position > len(current)+1 {
			return nil, domain.ErrPositionOutOfRange
		}
	}

	item := &domain.RankingItem{
		RankingID:   input.RankingID,
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Metadata:    input.Metadata,
		Position:    position,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	if position <= len(current) {
		// Mid-list insert: renumber everything behind the new item.
		updated := insertAt(current, item, position-1)
		return s.persistOrder(ctx, input.RankingID, updated, item.ID)
	}

	// Append: nobody else moves, patch the cached list directly.
	cache.Apply(s.cache, cache.ItemsKey(input.RankingID), func(items []*domain.RankingItem) []*domain.RankingItem {
		items = append(append([]*domain.RankingItem{}, items...), item)
		domain.SortItemsByPosition(items)
		return items
	})
	s.broadcast(ctx, input.RankingID)
	return item, nil
}

type UpdateItemInput struct {
	ID          string
	RankingID   string
	Title       string
	Description string
	ImageURL    string
	Metadata    domain.Metadata
	Position    *int
}

// UpdateItem rewrites an item's fields. A changed position moves the item
// within the list and renumbers the rest; every other field change patches
// the cached list in place.
func (s *ItemService) UpdateItem(ctx context.Context, input UpdateItemInput) (*domain.RankingItem, error) {
	if input.ID == "" || input.RankingID == "" || input.Title == "" || input.Description == "" {
		return nil, domain.ErrMissingFields
	}

	existing, err := s.itemRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	current, err := s.ListItems(ctx, input.RankingID)
	if err != nil {
		return nil, err
	}

	position := existing.Position
	if input.Position != nil {
		position = *input.Position
		if position < 1 || position > len(current) {
			return nil, domain.ErrPositionOutOfRange
		}
	}

	item := &domain.RankingItem{
		ID:          input.ID,
		RankingID:   existing.RankingID,
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Metadata:    input.Metadata,
		Position:    existing.Position,
		CreatedAt:   existing.CreatedAt,
	}
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	if position != existing.Position {
		updated := removeByID(current, item.ID)
		updated = insertAt(updated, item, position-1)
		return s.persistOrder(ctx, input.RankingID, updated, item.ID)
	}

	cache.Apply(s.cache, cache.ItemsKey(input.RankingID), func(items []*domain.RankingItem) []*domain.RankingItem {
		out := make([]*domain.RankingItem, len(items))
		for i, it := range items {
			if it.ID == item.ID {
				out[i] = item
			} else {
				out[i] = it
			}
		}
		domain.SortItemsByPosition(out)
		return out
	})
	s.broadcast(ctx, input.RankingID)
	return item, nil
}

// DeleteItem removes an item and closes the position gap it leaves: items
// previously at k+1..N end up at k..N-1.
func (s *ItemService) DeleteItem(ctx context.Context, id string) error {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	current, err := s.ListItems(ctx, item.RankingID)
	if err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return err
	}

	remaining := removeByID(current, id)
	if len(remaining) == 0 {
		cache.Put(s.cache, cache.ItemsKey(item.RankingID), []*domain.RankingItem{})
		s.broadcast(ctx, item.RankingID)
		return nil
	}
	_, err = s.persistOrder(ctx, item.RankingID, remaining, "")
	return err
}

// ReorderItems applies a full new ordering. itemIDs must be a permutation of
// the ranking's current item ids; anything else would silently desynchronize
// positions, so it is rejected outright.
func (s *ItemService) ReorderItems(ctx context.Context, rankingID string, itemIDs []string) ([]*domain.RankingItem, error) {
	current, err := s.ListItems(ctx, rankingID)
	if err != nil {
		return nil, err
	}
	if !isPermutation(current, itemIDs) {
		return nil, domain.ErrNotAPermutation
	}

	reordered, err := s.itemRepo.Reorder(ctx, rankingID, itemIDs)
	if err != nil {
		return nil, err
	}
	domain.SortItemsByPosition(reordered)
	cache.Put(s.cache, cache.ItemsKey(rankingID), reordered)
	s.broadcast(ctx, rankingID)
	return reordered, nil
}

// MoveUp swaps an item with its upper neighbour. The submitted ordering
// keeps every other item in place and appends the swapped pair at the end of
// the sequence; positions are then rederived as index+1. Moving the top item
// is a no-op.
func (s *ItemService) MoveUp(ctx context.Context, id string) ([]*domain.RankingItem, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.ListItems(ctx, item.RankingID)
	if err != nil {
		return nil, err
	}
	if item.Position <= 1 {
		return items, nil
	}
	above := itemAtPosition(items, item.Position-1)
	if above == nil {
		return items, nil
	}
	return s.ReorderItems(ctx, item.RankingID, pairAtEnd(items, above.ID, item.ID))
}

// MoveDown swaps an item with its lower neighbour using the same end-append
// construction. Moving the bottom item is a no-op.
func (s *ItemService) MoveDown(ctx context.Context, id string) ([]*domain.RankingItem, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.ListItems(ctx, item.RankingID)
	if err != nil {
		return nil, err
	}
	if item.Position >= len(items) {
		return items, nil
	}
	below := itemAtPosition(items, item.Position+1)
	if below == nil {
		return items, nil
	}
	return s.ReorderItems(ctx, item.RankingID, pairAtEnd(items, item.ID, below.ID))
}

// persistOrder pushes a recomputed ordering to the store, refreshes the
// cache with the authoritative result and returns the item with the given id
// from it (nil id skips the lookup).
func (s *ItemService) persistOrder(ctx context.Context, rankingID string, ordered []*domain.RankingItem, wantID string) (*domain.RankingItem, error) {
	ids := make([]string, len(ordered))
	for i, item := range ordered {
		ids[i] = item.ID
	}
	reordered, err := s.itemRepo.Reorder(ctx, rankingID, ids)
	if err != nil {
		return nil, err
	}
	domain.SortItemsByPosition(reordered)
	cache.Put(s.cache, cache.ItemsKey(rankingID), reordered)
	s.broadcast(ctx, rankingID)

	if wantID == "" {
		return nil, nil
	}
	for _, item := range reordered {
		if item.ID == wantID {
			return item, nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (s *ItemService) broadcast(ctx context.Context, rankingID string) {
	items, err := s.ListItems(ctx, rankingID)
	if err != nil {
		return
	}
	s.notifier.BroadcastItemsChanged(rankingID, items)
}

func insertAt(items []*domain.RankingItem, item *domain.RankingItem, index int) []*domain.RankingItem {
	out := make([]*domain.RankingItem, 0, len(items)+1)
	out = append(out, items[:index]...)
	out = append(out, item)
	out = append(out, items[index:]...)
	return out
}

func removeByID(items []*domain.RankingItem, id string) []*domain.RankingItem {
	out := make([]*domain.RankingItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

func itemAtPosition(items []*domain.RankingItem, position int) *domain.RankingItem {
	for _, item := range items {
		if item.Position == position {
			return item
		}
	}
	return nil
}

// pairAtEnd builds the reorder sequence for a move gesture: every item except
// the swapped pair in its existing relative order, then the pair.
func pairAtEnd(items []*domain.RankingItem, firstID, secondID string) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.ID != firstID && item.ID != secondID {
			ids = append(ids, item.ID)
		}
	}
	return append(ids, firstID, secondID)
}

func isPermutation(items []*domain.RankingItem, itemIDs []string) bool {
	if len(items) != len(itemIDs) {
		return false
	}
	seen := make(map[string]bool, len(itemIDs))
	for _, id := range itemIDs {
		if seen[id] {
			return false
		}
		seen[id] = true
	}
	for _, item := range items {
		if !seen[item.ID] {
			return false
		}
	}
	return true
}
