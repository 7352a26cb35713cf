package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ayame-bbs/ayame/internal/api"
	"github.com/ayame-bbs/ayame/internal/utils"
)

func (h *Handler) ListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := h.boards.List()
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, api.BoardsResponse{Boards: boards})
}

func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	boardId, err := parseIntParam(mux.Vars(r)["board"], "板ID")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	board, err := h.boards.Get(boardId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, board)
}
