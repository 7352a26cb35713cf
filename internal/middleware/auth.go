package middleware

import (
	"context"
	"net/http"
	"strings"

	internal_errors "github.com/ayame-bbs/ayame/internal/errors"
	"github.com/ayame-bbs/ayame/internal/jwt"
	"github.com/ayame-bbs/ayame/internal/utils"
)

// SessionCookieName holds the admin session token.
const SessionCookieName = "admin_session"

// Key to store the admin claims in the request context
type key int

const AdminClaimsKey key = 0

// Auth gates the admin endpoints behind a valid session token.
type Auth struct {
	jwtService    jwt.Service
	secureCookies bool
}

func NewAuth(jwtService jwt.Service, secureCookies bool) *Auth {
	return &Auth{jwtService, secureCookies}
}

// AdminOnly rejects the request before any policy or persistence step runs
// when the session is missing or invalid.
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := a.extractAdmin(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, internal_errors.Unauthorized("認証が必要です"))
				return
			}
			ctx := context.WithValue(r.Context(), AdminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionCookie builds the cookie carrying the freshly minted token.
// maxAge <= 0 expires the cookie immediately (logout).
func (a *Auth) SessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   a.secureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}

func (a *Auth) extractAdmin(r *http.Request) (*jwt.AdminClaims, error) {
	var tokenString string
	cookie, err := r.Cookie(SessionCookieName)
	if err == nil {
		tokenString = cookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}

	if tokenString == "" {
		return nil, internal_errors.Unauthorized("認証が必要です")
	}

	return a.jwtService.ParseToken(tokenString)
}

// AdminFromContext returns the claims placed by AdminOnly, or nil.
func AdminFromContext(ctx context.Context) *jwt.AdminClaims {
	claims, _ := ctx.Value(AdminClaimsKey).(*jwt.AdminClaims)
	return claims
}
