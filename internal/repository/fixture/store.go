// Package fixture implements the repository interfaces on top of a static
// JSON document. Reads are served from the decoded fixture; mutations apply
// to the in-memory copy only and are never written back to disk, so every
// change lives exactly as long as the process.
package fixture

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/mart/ranking-admin/internal/domain"
	"github.com/mart/ranking-admin/internal/repository"
)

type document struct {
	Rankings []*domain.Ranking     `json:"rankings"`
	Items    []*domain.RankingItem `json:"items"`
}

// Store holds the decoded fixture. All repository implementations returned
// by NewRepositories share one Store and one lock.
type Store struct {
	mu       sync.RWMutex
	rankings []*domain.Ranking
	items    []*domain.RankingItem
	users    map[uuid.UUID]*domain.User
	sessions map[uuid.UUID]*domain.UserSession
}

// Load reads and decodes the fixture file. This is the only point where the
// fixture store can fail the way a backend fetch would.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode fixture: %w", err)
	}
	return &Store{
		rankings: doc.Rankings,
		items:    doc.Items,
		users:    make(map[uuid.UUID]*domain.User),
		sessions: make(map[uuid.UUID]*domain.UserSession),
	}, nil
}

// Empty returns a store with no fixture data, used by tests that seed their
// own state.
func Empty() *Store {
	return &Store{
		users:    make(map[uuid.UUID]*domain.User),
		sessions: make(map[uuid.UUID]*domain.UserSession),
	}
}

// Seed replaces the store's rankings and items.
func (s *Store) Seed(rankings []*domain.Ranking, items []*domain.RankingItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rankings = rankings
	s.items = items
}

func NewRepositories(s *Store) *repository.Repositories {
	return &repository.Repositories{
		Ranking: &rankingRepository{store: s},
		Item:    &itemRepository{store: s},
		User:    &userRepository{store: s},
		Session: &sessionRepository{store: s},
	}
}

func copyItem(item *domain.RankingItem) *domain.RankingItem {
	out := *item
	return &out
}

func copyRanking(r *domain.Ranking) *domain.Ranking {
	out := *r
	return &out
}
