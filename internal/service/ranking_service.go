package service

import (
	"context"

	"github.com/mart/ranking-admin/internal/cache"
	"github.com/mart/ranking-admin/internal/domain"
	"github.com/mart/ranking-admin/internal/repository"
)

type RankingService struct {
	rankingRepo repository.RankingRepository
	cache       *cache.Store
}

func NewRankingService(rankingRepo repository.RankingRepository, store *cache.Store) *RankingService {
	return &RankingService{
		rankingRepo: rankingRepo,
		cache:       store,
	}
}

// ListRankings serves the rankings collection through the cache.
func (s *RankingService) ListRankings(ctx context.Context) ([]*domain.Ranking, error) {
	return cache.Fetch(ctx, s.cache, cache.RankingsKey(), s.rankingRepo.GetAll)
}

// GetRanking resolves a ranking by id or slug from the cached collection.
func (s *RankingService) GetRanking(ctx context.Context, idOrSlug string) (*domain.Ranking, error) {
	rankings, err := s.ListRankings(ctx)
	if err != nil {
		return nil, err
	}
	for _, ranking := range rankings {
		if ranking.ID == idOrSlug || ranking.Slug == idOrSlug {
			return ranking, nil
		}
	}
	return nil, domain.ErrRankingNotFound
}
