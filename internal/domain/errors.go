package domain

import "errors"

// Ranking errors
var (
	ErrRankingNotFound = errors.New("ranking not found")
)

// Item errors
var (
	ErrItemNotFound       = errors.New("item not found")
	ErrMissingFields      = errors.New("id, rankingId, title and description are required")
	ErrPositionOutOfRange = errors.New("position is out of range")
	ErrNotAPermutation    = errors.New("reorder list must contain every current item id exactly once")
)
