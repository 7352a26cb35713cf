package domain

type (
	BoardId  = int64
	ThreadId = int64
	PostId   = int64
	BanId    = int64

	// IdentityHash is the one-way token derived from a client address.
	// Raw addresses are never stored.
	IdentityHash = string
)

// DefaultPosterName is shown when a poster leaves the name field empty.
const DefaultPosterName = "名無しさん"
