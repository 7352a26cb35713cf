// Package handler terminates HTTP: it decodes requests, resolves the
// caller's identity hash, invokes the services and renders responses.
// Stored content is raw; formatting to safe HTML happens here, exactly
// once per response.
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ayame-bbs/ayame/internal/config"
	"github.com/ayame-bbs/ayame/internal/ident"
	"github.com/ayame-bbs/ayame/internal/logger"
	"github.com/ayame-bbs/ayame/internal/middleware"
	"github.com/ayame-bbs/ayame/internal/service"
	"github.com/ayame-bbs/ayame/internal/utils"
)

type Handler struct {
	auth       service.AuthService
	boards     service.BoardService
	threads    service.ThreadService
	posts      service.PostService
	moderation service.ModerationService
	audit      service.AuditService
	sessions   *middleware.Auth
	cfg        *config.Config
	pinger     Pinger
}

// Pinger reports storage liveness for the health endpoint.
type Pinger interface {
	Ping() error
}

func New(
	auth service.AuthService,
	boards service.BoardService,
	threads service.ThreadService,
	posts service.PostService,
	moderation service.ModerationService,
	audit service.AuditService,
	sessions *middleware.Auth,
	cfg *config.Config,
	pinger Pinger,
) *Handler {
	return &Handler{auth, boards, threads, posts, moderation, audit, sessions, cfg, pinger}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encoding response", "err", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

// writeJSONStatus sets the status before encoding; headers cannot change
// after the first body byte.
func writeJSONStatus(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("encoding response", "err", err)
	}
}

// parseIntParam parses an integer parameter and returns a meaningful error
func parseIntParam(param string, paramName string) (int64, error) {
	val, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%sは数値である必要があります", paramName)
	}
	return val, nil
}

// identity resolves the caller's address and hashes it. Every write path
// goes through here so bans and rate limits always compare the same value.
func (h *Handler) identity(r *http.Request) (string, error) {
	ip, err := utils.GetIP(r)
	if err != nil {
		return "", err
	}
	return ident.Hash(ip), nil
}
