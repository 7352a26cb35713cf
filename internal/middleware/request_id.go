package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const RequestIdKey key = 1

// RequestIdHeader carries the id back to the client for support tickets.
const RequestIdHeader = "X-Request-Id"

// RequestId tags every request with a unique id. Access log rows carry it
// so one request's writes can be correlated.
func RequestId(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIdHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIdHeader, id)
		ctx := context.WithValue(r.Context(), RequestIdKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIdFromContext returns the id placed by RequestId, or "".
func RequestIdFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIdKey).(string)
	return id
}
