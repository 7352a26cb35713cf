package handler

import (
	"net/http"

	"github.com/ayame-bbs/ayame/internal/api"
	"github.com/ayame-bbs/ayame/internal/domain"
	"github.com/ayame-bbs/ayame/internal/utils"
)

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var body api.AdminLoginRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	token, err := h.auth.Login(domain.AdminCredentials{Username: body.Username, Password: body.Password})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	maxAge := int(h.cfg.SessionTTL().Seconds())
	http.SetCookie(w, h.sessions.SessionCookie(token, maxAge))
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessions.SessionCookie("", -1))
	w.WriteHeader(http.StatusOK)
}
