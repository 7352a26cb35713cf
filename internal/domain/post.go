package domain

import (
	"time"
)

type PostCreationData struct {
	ThreadId ThreadId
	Name     string
	Email    string
	Content  string
	Creator  IdentityHash
}

type Post struct {
	Id         PostId
	ThreadId   ThreadId
	PostNumber int
	Name       string
	Email      string
	Content    string // raw, escaped only at render time
	Creator    IdentityHash
	CreatedAt  time.Time
	IsDeleted  bool
	// Set only when IsDeleted.
	DeletedReason string
}
