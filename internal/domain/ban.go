package domain

import (
	"time"
)

// Ban blocks an identity hash from posting.
// ExpiresAt == nil means the ban is permanent.
type Ban struct {
	Id        BanId
	Identity  IdentityHash
	Reason    string
	ExpiresAt *time.Time
	CreatedAt time.Time
}

// Active reports whether the ban is in force at the given instant.
func (b Ban) Active(now time.Time) bool {
	return b.ExpiresAt == nil || b.ExpiresAt.After(now)
}
