package postgres

import (
	"context"
	"errors"

	"github.com/mart/ranking-admin/internal/domain"
	"gorm.io/gorm"
)

type rankingRepository struct {
	db *gorm.DB
}

func NewRankingRepository(db *gorm.DB) *rankingRepository {
	return &rankingRepository{db: db}
}

func (r *rankingRepository) GetAll(ctx context.Context) ([]*domain.Ranking, error) {
	var rankings []*domain.Ranking
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rankings).Error
	if err != nil {
		return nil, err
	}
	return rankings, nil
}

func (r *rankingRepository) GetByID(ctx context.Context, id string) (*domain.Ranking, error) {
	var ranking domain.Ranking
	err := r.db.WithContext(ctx).First(&ranking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRankingNotFound
		}
		return nil, err
	}
	return &ranking, nil
}

func (r *rankingRepository) GetBySlug(ctx context.Context, slug string) (*domain.Ranking, error) {
	var ranking domain.Ranking
	err := r.db.WithContext(ctx).First(&ranking, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRankingNotFound
		}
		return nil, err
	}
	return &ranking, nil
}
