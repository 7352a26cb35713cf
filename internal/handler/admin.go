package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/ayame-bbs/ayame/internal/api"
	"github.com/ayame-bbs/ayame/internal/ident"
	"github.com/ayame-bbs/ayame/internal/middleware"
	"github.com/ayame-bbs/ayame/internal/utils"
)

// logAdminAction records a moderation action in the access log, tagged with
// the acting admin's username when the session claims are present.
func (h *Handler) logAdminAction(r *http.Request, action, resourceId, details string) {
	actor, err := h.identity(r)
	if err != nil {
		return
	}
	if admin := middleware.AdminFromContext(r.Context()); admin != nil {
		details = fmt.Sprintf("%s, admin: %s", details, admin.Username)
	}
	h.audit.Access(actor, action, resourceId, details, middleware.RequestIdFromContext(r.Context()))
}

// BanIdentity accepts either a raw address or an already-hashed identity.
// Raw addresses are hashed with the same function as the write path, so a
// ban always matches what rate limiting stored.
func (h *Handler) BanIdentity(w http.ResponseWriter, r *http.Request) {
	var body api.BanRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	identity := body.Identity
	if !ident.IsHash(identity) {
		identity = ident.Hash(identity)
	}

	banId, err := h.moderation.Ban(identity, body.Reason, body.DurationDays)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.logAdminAction(r, "ban", fmt.Sprintf("%d", banId), "identity "+identity)
	writeJSONStatus(w, http.StatusCreated, api.BanResponse{Id: banId})
}

func (h *Handler) Unban(w http.ResponseWriter, r *http.Request) {
	banId, err := parseIntParam(mux.Vars(r)["ban"], "規制ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.moderation.Unban(banId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.logAdminAction(r, "unban", fmt.Sprintf("%d", banId), "")
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) ListBans(w http.ResponseWriter, r *http.Request) {
	bans, err := h.moderation.ListBans()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.BansResponse{Bans: banListView(bans, time.Now())})
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postId, err := parseIntParam(mux.Vars(r)["post"], "投稿ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.DeleteRequest
	if r.ContentLength > 0 {
		if err := utils.Decode(r.Body, &body); err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
	}

	if err := h.moderation.DeletePost(r.Context(), postId, body.Reason); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.logAdminAction(r, "delete_post", fmt.Sprintf("%d", postId), "reason: "+body.Reason)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(mux.Vars(r)["thread"], "スレッドID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var body api.DeleteRequest
	if r.ContentLength > 0 {
		if err := utils.Decode(r.Body, &body); err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
	}

	if err := h.moderation.DeleteThread(r.Context(), threadId, body.Reason); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.logAdminAction(r, "delete_thread", fmt.Sprintf("%d", threadId), "reason: "+body.Reason)
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.moderation.Statistics()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.StatsResponse{
		Summary: stats.Summary,
		Boards:  stats.Boards,
		Hourly:  stats.Hourly,
		Daily:   stats.Daily,
	})
}

// Logs serves either the access or the error log depending on the "type"
// query parameter (default "access").
func (h *Handler) Logs(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	switch r.URL.Query().Get("type") {
	case "", "access":
		logs, total, err := h.moderation.AccessLogs(limit, offset)
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		writeJSON(w, api.AccessLogsResponse{Logs: logs, Total: total})
	case "error":
		logs, total, err := h.moderation.ErrorLogs(limit, offset)
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		writeJSON(w, api.ErrorLogsResponse{Logs: logs, Total: total})
	default:
		http.Error(w, "不正なログタイプ", http.StatusBadRequest)
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return fallback
	}
	return val
}
