package fixture

import (
	"context"

	"github.com/mart/ranking-admin/internal/domain"
)

type rankingRepository struct {
	store *Store
}

func (r *rankingRepository) GetAll(ctx context.Context) ([]*domain.Ranking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rankings := make([]*domain.Ranking, 0, len(r.store.rankings))
	for _, ranking := range r.store.rankings {
		rankings = append(rankings, copyRanking(ranking))
	}
	return rankings, nil
}

func (r *rankingRepository) GetByID(ctx context.Context, id string) (*domain.Ranking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, ranking := range r.store.rankings {
		if ranking.ID == id {
			return copyRanking(ranking), nil
		}
	}
	return nil, domain.ErrRankingNotFound
}

func (r *rankingRepository) GetBySlug(ctx context.Context, slug string) (*domain.Ranking, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, ranking := range r.store.rankings {
		if ranking.Slug == slug {
			return copyRanking(ranking), nil
		}
	}
	return nil, domain.ErrRankingNotFound
}
