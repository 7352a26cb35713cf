package handler

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ayame-bbs/ayame/internal/api"
	"github.com/ayame-bbs/ayame/internal/domain"
	internal_errors "github.com/ayame-bbs/ayame/internal/errors"
	"github.com/ayame-bbs/ayame/internal/middleware"
	"github.com/ayame-bbs/ayame/internal/utils"
)

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var body api.CreatePostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	creator, err := h.identity(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	creationData := domain.PostCreationData{
		ThreadId: body.ThreadId,
		Name:     body.Name,
		Email:    body.Email,
		Content:  body.Content,
		Creator:  creator,
	}

	postId, err := h.posts.Create(r.Context(), creationData)
	if err != nil {
		if !internal_errors.IsClientError(err) {
			h.audit.Error(creator, "post_creation", err.Error())
			err = &internal_errors.ErrorWithStatusCode{Message: "投稿の作成中にエラーが発生しました", StatusCode: http.StatusInternalServerError}
		}
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.posts.Get(postId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.audit.Access(creator, "create_post", fmt.Sprintf("%d", postId),
		fmt.Sprintf("thread %d", body.ThreadId), middleware.RequestIdFromContext(r.Context()))

	writeJSONStatus(w, http.StatusCreated, api.CreatePostResponse{Id: postId, PostNumber: post.PostNumber})
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	postId, err := parseIntParam(mux.Vars(r)["post"], "投稿ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := h.posts.Get(postId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, postView(&post))
}
