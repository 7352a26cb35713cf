package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestId(t *testing.T) {
	t.Run("generates an id when absent", func(t *testing.T) {
		var seen string
		endpoint := RequestId(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestIdFromContext(r.Context())
		}))

		w := httptest.NewRecorder()
		endpoint.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(RequestIdHeader))
	})

	t.Run("keeps a caller-supplied id", func(t *testing.T) {
		var seen string
		endpoint := RequestId(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestIdFromContext(r.Context())
		}))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(RequestIdHeader, "req-123")
		w := httptest.NewRecorder()
		endpoint.ServeHTTP(w, r)

		assert.Equal(t, "req-123", seen)
	})
}

func TestSecurityHeaders(t *testing.T) {
	endpoint := SecurityHeaders(true)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	endpoint.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
}
