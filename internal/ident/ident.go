// Package ident derives opaque identity tokens from raw client addresses.
//
// The same hash is used for rate limiting and for bans. If the two paths
// ever used different transforms, bans would silently stop matching, so
// every comparison against a stored identity must go through Hash.
package ident

import (
	"crypto/sha256"
	"encoding/hex"
)

// hashLength is the number of hex characters kept from the digest. Enough
// to group requests for rate limiting, not meant as a global unique id.
const hashLength = 16

// Hash returns a deterministic, non-reversible token for a raw address.
// The raw address itself is never persisted.
func Hash(rawAddress string) string {
	sum := sha256.Sum256([]byte(rawAddress))
	return hex.EncodeToString(sum[:])[:hashLength]
}

// IsHash reports whether s already looks like a Hash output. Lets admin
// tooling pass either a raw address or a value copied from the logs.
func IsHash(s string) bool {
	if len(s) != hashLength {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
