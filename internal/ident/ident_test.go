package ident

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, Hash("192.0.2.1"), Hash("192.0.2.1"))
	})

	t.Run("fixed length regardless of input", func(t *testing.T) {
		for _, in := range []string{"", "a", "192.0.2.1", strings.Repeat("x", 10_000)} {
			assert.Len(t, Hash(in), hashLength, "input %q", in)
		}
	})

	t.Run("different inputs differ", func(t *testing.T) {
		assert.NotEqual(t, Hash("192.0.2.1"), Hash("192.0.2.2"))
	})

	t.Run("output is lowercase hex", func(t *testing.T) {
		out := Hash("203.0.113.7")
		assert.Regexp(t, "^[0-9a-f]{16}$", out)
	})

	t.Run("known value", func(t *testing.T) {
		// sha256("127.0.0.1") truncated to 16 hex chars.
		assert.Equal(t, "12ca17b49af22894", Hash("127.0.0.1"))
	})
}

func TestIsHash(t *testing.T) {
	assert.True(t, IsHash(Hash("192.0.2.1")))
	assert.True(t, IsHash("12ca17b49af22894"))

	assert.False(t, IsHash("192.0.2.1"))
	assert.False(t, IsHash("12ca17b49af2289"))               // too short
	assert.False(t, IsHash("12ca17b49af228941"))             // too long
	assert.False(t, IsHash("12CA17B49AF22894"))              // uppercase
	assert.False(t, IsHash(strings.Repeat("g", hashLength))) // non-hex
}
