package fixture

import (
	"context"

	"github.com/google/uuid"
	"github.com/mart/ranking-admin/internal/domain"
	"gorm.io/gorm"
)

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	copied := *user
	r.store.users[user.ID] = &copied
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *userRepository) GetByDisplayName(ctx context.Context, displayName string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, user := range r.store.users {
		if user.DisplayName == displayName {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *user
	r.store.users[user.ID] = &copied
	return nil
}

type sessionRepository struct {
	store *Store
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.UserSession) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	copied := *session
	r.store.sessions[session.ID] = &copied
	return nil
}

func (r *sessionRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.UserSession, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, session := range r.store.sessions {
		if session.UserID == userID {
			copied := *session
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.sessions, id)
	return nil
}

func (r *sessionRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, session := range r.store.sessions {
		if session.UserID == userID {
			delete(r.store.sessions, id)
		}
	}
	return nil
}
