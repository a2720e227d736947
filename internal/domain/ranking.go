package domain

import (
	"time"

	"gorm.io/datatypes"
)

type RankingStatus string

const (
	RankingStatusDraft     RankingStatus = "draft"
	RankingStatusPublished RankingStatus = "published"
	RankingStatusArchived  RankingStatus = "archived"
)

// Ranking is a named, categorized list of items with a publish lifecycle.
// Rankings are read-only in the item management workflow; they are created
// and published through a separate editorial flow.
type Ranking struct {
	ID          string         `json:"id" gorm:"primaryKey"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	Category    string         `json:"category" gorm:"index"`
	Status      RankingStatus  `json:"status" gorm:"not null;default:'draft'"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null"`
	Tags        datatypes.JSON `json:"tags" gorm:"type:jsonb"` // ["top-10", "community"]
	CreatedAt   time.Time      `json:"createdAt"`
}

func (s RankingStatus) Valid() bool {
	switch s {
	case RankingStatusDraft, RankingStatusPublished, RankingStatusArchived:
		return true
	}
	return false
}
