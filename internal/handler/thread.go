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

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var body api.CreateThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	creator, err := h.identity(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	creationData := domain.ThreadCreationData{
		BoardId: body.BoardId,
		Title:   body.Title,
		Creator: creator,
		FirstPost: domain.PostCreationData{
			Name:    body.Name,
			Email:   body.Email,
			Content: body.Content,
		},
	}

	threadId, err := h.threads.Create(r.Context(), creationData)
	if err != nil {
		if !internal_errors.IsClientError(err) {
			h.audit.Error(creator, "thread_creation", err.Error())
			err = &internal_errors.ErrorWithStatusCode{Message: "スレッドの作成中にエラーが発生しました", StatusCode: http.StatusInternalServerError}
		}
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	h.audit.Access(creator, "create_thread", fmt.Sprintf("%d", threadId),
		fmt.Sprintf("board %d", body.BoardId), middleware.RequestIdFromContext(r.Context()))

	writeJSONStatus(w, http.StatusCreated, api.CreateThreadResponse{Id: threadId})
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := parseIntParam(mux.Vars(r)["thread"], "スレッドID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	thread, err := h.threads.Get(threadId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, threadView(thread))
}

func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseIntParam(mux.Vars(r)["board"], "板ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	threads, err := h.threads.List(boardId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.ThreadsResponse{Threads: threadListView(threads)})
}

func (h *Handler) SearchThreads(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")

	var boardId *domain.BoardId
	if boardStr := r.URL.Query().Get("board_id"); boardStr != "" {
		id, err := parseIntParam(boardStr, "板ID")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		boardId = &id
	}

	threads, err := h.threads.Search(keyword, boardId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if searcher, idErr := h.identity(r); idErr == nil {
		board := "all"
		if boardId != nil {
			board = fmt.Sprintf("%d", *boardId)
		}
		h.audit.Access(searcher, "search", "",
			fmt.Sprintf("keyword: %s, board_id: %s", keyword, board),
			middleware.RequestIdFromContext(r.Context()))
	}

	writeJSON(w, api.ThreadsResponse{Threads: threadListView(threads)})
}
