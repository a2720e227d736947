package service

import (
	"github.com/mart/ranking-admin/internal/cache"
	"github.com/mart/ranking-admin/internal/config"
	"github.com/mart/ranking-admin/internal/repository"
)

type Services struct {
	Auth    *AuthService
	Ranking *RankingService
	Item    *ItemService
}

func NewServices(repos *repository.Repositories, store *cache.Store, notifier ItemsNotifier, cfg *config.Config) *Services {
	return &Services{
		Auth:    NewAuthService(repos.User, repos.Session, cfg),
		Ranking: NewRankingService(repos.Ranking, store),
		Item:    NewItemService(repos.Ranking, repos.Item, store, notifier),
	}
}
