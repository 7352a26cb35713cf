package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	BoardId   BoardId
	Title     string
	Creator   IdentityHash
	FirstPost PostCreationData
}

type ThreadMetadata struct {
	Id        ThreadId
	BoardId   BoardId
	BoardName string
	Title     string
	Creator   IdentityHash
	PostCount int
	CreatedAt time.Time
	UpdatedAt time.Time
	IsDeleted bool
}

type Thread struct {
	ThreadMetadata
	Posts []*Post
}
