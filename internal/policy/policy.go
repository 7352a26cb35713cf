// Package policy holds the pure posting-rate and content checks. Every
// function operates only on data supplied by the caller; fetching the
// last-post timestamp or today's count is the service layer's job.
package policy

import (
	"strings"
	"time"
	"unicode/utf8"
)

// WithinInterval reports whether enough time has passed since the last
// action. A nil lastAction means no prior action, which always passes.
func WithinInterval(lastAction *time.Time, now time.Time, minInterval time.Duration) bool {
	if lastAction == nil {
		return true
	}
	return now.Sub(*lastAction) >= minInterval
}

// WithinDailyLimit reports whether another action is allowed today.
// countToday is the number of actions already taken.
func WithinDailyLimit(countToday, maxPerDay int) bool {
	return countToday < maxPerDay
}

// WithinLength reports whether text fits in maxChars characters.
// Counts runes, not bytes: a 1000-character Japanese post is within a
// 1000-char limit even though it is ~3000 bytes.
func WithinLength(text string, maxChars int) bool {
	return utf8.RuneCountInString(text) <= maxChars
}

// ContainsBannedTerm reports whether any of the configured terms occurs in
// text as a case-insensitive substring.
func ContainsBannedTerm(text string, bannedTerms []string) bool {
	lower := strings.ToLower(text)
	for _, term := range bannedTerms {
		if term == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(term)) {
			return true
		}
	}
	return false
}
