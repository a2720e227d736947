package domain

import (
	"sort"
	"time"
)

// RankingItem is one entry in a ranking. Position is 1-based and must stay
// contiguous within the owning ranking: for N items the positions are exactly
// {1..N} after every successful mutation.
type RankingItem struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	RankingID   string    `json:"rankingId" gorm:"index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Metadata    Metadata  `json:"metadata,omitempty" gorm:"type:jsonb"`
	Position    int       `json:"position" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SortItemsByPosition orders items ascending by position in place.
func SortItemsByPosition(items []*RankingItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})
}

// ValidPositions reports whether the items' positions form exactly {1..N}.
func ValidPositions(items []*RankingItem) bool {
	seen := make(map[int]bool, len(items))
	for _, item := range items {
		if item.Position < 1 || item.Position > len(items) || seen[item.Position] {
			return false
		}
		seen[item.Position] = true
	}
	return true
}
