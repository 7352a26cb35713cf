package setup

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/ayame-bbs/ayame/internal/config"
	"github.com/ayame-bbs/ayame/internal/handler"
	"github.com/ayame-bbs/ayame/internal/jwt"
	"github.com/ayame-bbs/ayame/internal/middleware"
	"github.com/ayame-bbs/ayame/internal/service"
	"github.com/ayame-bbs/ayame/internal/storage/pg"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage         *pg.Storage
	Handler         *handler.Handler
	AuthMiddleware  *middleware.Auth
	SecurityHeaders func(http.Handler) http.Handler
}

// SetupDependencies initializes all dependencies required for the application,
// including the schema and seed rows.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Private.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := pg.AdminSeed{Username: cfg.Private.AdminUsername, PassHash: string(passHash)}
	if err := storage.InitSchema(ctx, admin); err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.SessionTTL())
	authMw := middleware.NewAuth(jwtService, cfg.Public.SecureCookies)

	auth := service.NewAuth(storage, jwtService)
	boards := service.NewBoard(storage)
	threads := service.NewThread(storage, storage, &cfg.Public)
	posts := service.NewPost(storage, storage, &cfg.Public)
	moderation := service.NewModeration(storage)
	audit := service.NewAudit(storage)

	h := handler.New(auth, boards, threads, posts, moderation, audit, authMw, cfg, storage)

	return &Dependencies{
		Storage:         storage,
		Handler:         h,
		AuthMiddleware:  authMw,
		SecurityHeaders: middleware.SecurityHeaders(cfg.Public.SecureCookies),
	}, nil
}
