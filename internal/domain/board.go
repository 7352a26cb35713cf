package domain

import (
	"time"
)

// Boards are seeded at initialization and immutable afterwards.
type Board struct {
	Id          BoardId
	Name        string
	Description string
	Category    string
	CreatedAt   time.Time

	// Live counts over non-deleted threads/posts, filled by aggregate reads.
	ThreadCount int
	PostCount   int
}
