package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mart/ranking-admin/internal/domain"
	"gorm.io/gorm"
)

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *itemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) GetByRankingID(ctx context.Context, rankingID string) ([]*domain.RankingItem, error) {
	var items []*domain.RankingItem
	err := r.db.WithContext(ctx).
		Where("ranking_id = ?", rankingID).
		Order("position ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.RankingItem, error) {
	var item domain.RankingItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) Create(ctx context.Context, item *domain.RankingItem) error {
	now := time.Now()
	if item.ID == "" {
		item.ID = fmt.Sprintf("item-%d", now.UnixMilli())
	}
	if item.Position == 0 {
		item.Position = 1
	}
	item.CreatedAt = now
	item.UpdatedAt = now
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) Update(ctx context.Context, item *domain.RankingItem) error {
	if item.ID == "" || item.RankingID == "" || item.Title == "" || item.Description == "" {
		return domain.ErrMissingFields
	}

	item.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(&domain.RankingItem{}).
		Where("id = ?", item.ID).
		Select("*").
		Omit("created_at").
		Updates(item)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.RankingItem{}, "id = ?", id).Error
}

// Reorder rewrites positions inside one transaction so a concurrent reader
// never observes a half-renumbered ranking.
func (r *itemRepository) Reorder(ctx context.Context, rankingID string, itemIDs []string) ([]*domain.RankingItem, error) {
	now := time.Now()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range itemIDs {
			result := tx.Model(&domain.RankingItem{}).
				Where("id = ? AND ranking_id = ?", id, rankingID).
				Updates(map[string]interface{}{
					"position":   i + 1,
					"updated_at": now,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: unknown item %s", domain.ErrItemNotFound, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.GetByRankingID(ctx, rankingID)
}
