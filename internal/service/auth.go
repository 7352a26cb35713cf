package service

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/ayame-bbs/ayame/internal/domain"
	internal_errors "github.com/ayame-bbs/ayame/internal/errors"
	"github.com/ayame-bbs/ayame/internal/logger"
)

type AuthService interface {
	Login(creds domain.AdminCredentials) (string, error)
}

type Auth struct {
	storage AuthStorage
	jwt     Jwt
}

type AuthStorage interface {
	Admin(username string) (domain.Admin, error)
}

type Jwt interface {
	NewToken(admin domain.Admin) (string, error)
}

func NewAuth(storage AuthStorage, jwt Jwt) AuthService {
	return &Auth{storage, jwt}
}

// Login verifies the credentials and mints a session token. Unknown
// usernames and wrong passwords produce the same error so account names
// cannot be probed.
func (a *Auth) Login(creds domain.AdminCredentials) (string, error) {
	admin, err := a.storage.Admin(creds.Username)
	if err != nil {
		if internal_errors.StatusCode(err) == http.StatusNotFound {
			return "", internal_errors.Unauthorized("ユーザー名またはパスワードが正しくありません")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PassHash), []byte(creds.Password)); err != nil {
		logger.Log.Warn("password verification failed", "username", creds.Username)
		return "", internal_errors.Unauthorized("ユーザー名またはパスワードが正しくありません")
	}

	return a.jwt.NewToken(admin)
}
