package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mart/ranking-admin/internal/domain"
)

type RankingRepository interface {
	GetAll(ctx context.Context) ([]*domain.Ranking, error)
	GetByID(ctx context.Context, id string) (*domain.Ranking, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Ranking, error)
}

type ItemRepository interface {
	GetByRankingID(ctx context.Context, rankingID string) ([]*domain.RankingItem, error)
	GetByID(ctx context.Context, id string) (*domain.RankingItem, error)
	Create(ctx context.Context, item *domain.RankingItem) error
	Update(ctx context.Context, item *domain.RankingItem) error
	Delete(ctx context.Context, id string) error
	// Reorder assigns position = index+1 following the order of itemIDs and
	// persists the result. itemIDs must be a permutation of the ranking's
	// current item ids.
	Reorder(ctx context.Context, rankingID string, itemIDs []string) ([]*domain.RankingItem, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}

type Repositories struct {
	Ranking RankingRepository
	Item    ItemRepository
	User    UserRepository
	Session SessionRepository
}
