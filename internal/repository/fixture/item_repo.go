package fixture

import (
	"context"
	"fmt"
	"time"

	"github.com/mart/ranking-admin/internal/domain"
)

type itemRepository struct {
	store *Store
}

func (r *itemRepository) GetByRankingID(ctx context.Context, rankingID string) ([]*domain.RankingItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	items := make([]*domain.RankingItem, 0)
	for _, item := range r.store.items {
		if item.RankingID == rankingID {
			items = append(items, copyItem(item))
		}
	}
	return items, nil
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.RankingItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, item := range r.store.items {
		if item.ID == id {
			return copyItem(item), nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (r *itemRepository) Create(ctx context.Context, item *domain.RankingItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	if item.ID == "" {
		item.ID = fmt.Sprintf("item-%d", now.UnixMilli())
	}
	if item.Position == 0 {
		item.Position = 1
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	r.store.items = append(r.store.items, copyItem(item))
	return nil
}

func (r *itemRepository) Update(ctx context.Context, item *domain.RankingItem) error {
	if item.ID == "" || item.RankingID == "" || item.Title == "" || item.Description == "" {
		return domain.ErrMissingFields
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item.UpdatedAt = time.Now()
	for i, existing := range r.store.items {
		if existing.ID == item.ID {
			r.store.items[i] = copyItem(item)
			return nil
		}
	}
	return domain.ErrItemNotFound
}

// Delete succeeds even when the id is unknown, matching a backend DELETE
// that treats missing rows as already gone.
func (r *itemRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	kept := r.store.items[:0]
	for _, item := range r.store.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	r.store.items = kept
	return nil
}

func (r *itemRepository) Reorder(ctx context.Context, rankingID string, itemIDs []string) ([]*domain.RankingItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	byID := make(map[string]*domain.RankingItem)
	for _, item := range r.store.items {
		if item.RankingID == rankingID {
			byID[item.ID] = item
		}
	}

	now := time.Now()
	reordered := make([]*domain.RankingItem, 0, len(itemIDs))
	for i, id := range itemIDs {
		item, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: unknown item %s", domain.ErrItemNotFound, id)
		}
		item.Position = i + 1
		item.UpdatedAt = now
		reordered = append(reordered, copyItem(item))
	}
	return reordered, nil
}
