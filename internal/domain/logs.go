package domain

import (
	"time"
)

// Append-only audit records. Writing them is always best-effort: a failed
// log insert must never fail the operation being logged.

type AccessLogEntry struct {
	Id         int64
	Identity   IdentityHash
	Action     string
	ResourceId string
	Details    string
	RequestId  string
	CreatedAt  time.Time
}

type ErrorLogEntry struct {
	Id           int64
	Identity     IdentityHash
	ErrorType    string
	ErrorMessage string
	CreatedAt    time.Time
}
