package jwt

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ayame-bbs/ayame/internal/domain"
	internal_errors "github.com/ayame-bbs/ayame/internal/errors"
	"github.com/ayame-bbs/ayame/internal/logger"
)

// Service issues and verifies admin session tokens.
type Service interface {
	NewToken(admin domain.Admin) (string, error)
	ParseToken(tokenStr string) (*AdminClaims, error)
}

type AdminClaims struct {
	Id       int64
	Username string
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(admin domain.Admin) (string, error) {
	claims := jwt.MapClaims{}
	claims["id"] = admin.Id
	claims["username"] = admin.Username
	claims["exp"] = time.Now().Add(j.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("signing admin token", "err", err)
		return "", fmt.Errorf("can't create token")
	}

	return tokenString, nil
}

func (j *Jwt) ParseToken(tokenStr string) (*AdminClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		// Verify signing algorithm
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &internal_errors.ErrorWithStatusCode{
				Message:    fmt.Sprintf("Unexpected signing method: %v", token.Header["alg"]),
				StatusCode: http.StatusUnauthorized,
			}
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		return nil, internal_errors.Unauthorized("Invalid token signature")
	}
	if !token.Valid {
		return nil, internal_errors.Unauthorized("Invalid session token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, internal_errors.Unauthorized("Invalid session claims")
	}
	idFloat, ok := mapClaims["id"].(float64)
	if !ok {
		return nil, internal_errors.Unauthorized("Invalid session claims")
	}
	username, ok := mapClaims["username"].(string)
	if !ok {
		return nil, internal_errors.Unauthorized("Invalid session claims")
	}

	return &AdminClaims{Id: int64(idFloat), Username: username}, nil
}
