package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayame-bbs/ayame/internal/api"
	"github.com/ayame-bbs/ayame/internal/domain"
	internal_errors "github.com/ayame-bbs/ayame/internal/errors"
	"github.com/ayame-bbs/ayame/internal/ident"
)

func TestCreateThreadHandler(t *testing.T) {
	requestBody := []byte(`{"board_id": 1, "title": "今日の雑談", "content": "最初の投稿"}`)

	t.Run("success", func(t *testing.T) {
		h, deps := newTestHandler(t)
		router := testRouter(h)

		rr := doRequest(router, http.MethodPost, "/v1/threads", requestBody)

		require.Equal(t, http.StatusCreated, rr.Code)
		var resp api.CreateThreadResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, domain.ThreadId(11), resp.Id)

		// identity comes from the remote address, hashed
		assert.Equal(t, ident.Hash("192.0.2.1"), deps.threads.createArg.Creator)
		assert.Equal(t, "今日の雑談", deps.threads.createArg.Title)
		assert.Equal(t, 1, deps.audit.accessCount)
	})

	t.Run("invalid json", func(t *testing.T) {
		h, _ := newTestHandler(t)
		router := testRouter(h)

		rr := doRequest(router, http.MethodPost, "/v1/threads", []byte(`{invalid::}`))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("missing required fields", func(t *testing.T) {
		h, _ := newTestHandler(t)
		router := testRouter(h)

		rr := doRequest(router, http.MethodPost, "/v1/threads", []byte(`{"board_id": 1}`))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("policy violation keeps its status and message", func(t *testing.T) {
		h, deps := newTestHandler(t)
		deps.threads.createFunc = func(creationData domain.ThreadCreationData) (domain.ThreadId, error) {
			return 0, internal_errors.RateLimited("連続スレッド作成はできません。5分お待ちください")
		}
		router := testRouter(h)

		rr := doRequest(router, http.MethodPost, "/v1/threads", requestBody)

		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Contains(t, rr.Body.String(), "5分お待ちください")
		assert.Zero(t, deps.audit.errorCount)
	})

	t.Run("internal failure is masked and logged", func(t *testing.T) {
		h, deps := newTestHandler(t)
		deps.threads.createFunc = func(creationData domain.ThreadCreationData) (domain.ThreadId, error) {
			return 0, errors.New("pq: connection reset")
		}
		router := testRouter(h)

		rr := doRequest(router, http.MethodPost, "/v1/threads", requestBody)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "pq:")
		assert.Contains(t, rr.Body.String(), "スレッドの作成中にエラーが発生しました")
		assert.Equal(t, 1, deps.audit.errorCount)
	})
}

func TestGetThreadHandler(t *testing.T) {
	t.Run("renders posts", func(t *testing.T) {
		h, deps := newTestHandler(t)
		deps.threads.getFunc = func(id domain.ThreadId) (domain.Thread, error) {
			return domain.Thread{
				ThreadMetadata: domain.ThreadMetadata{Id: id, Title: "<b>タイトル"},
				Posts: []*domain.Post{
					{Id: 1, PostNumber: 1, Content: ">>1\nhttp://example.com"},
					{Id: 2, PostNumber: 2, Content: "秘密", IsDeleted: true, DeletedReason: "rule"},
				},
			}, nil
		}
		router := testRouter(h)

		rr := doRequest(router, http.MethodGet, "/v1/threads/7", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		var view api.ThreadView
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))

		assert.Equal(t, "&lt;b&gt;タイトル", view.Title)
		require.Len(t, view.Posts, 2)
		assert.Contains(t, view.Posts[0].Content, `data-post-number="1"`)
		assert.Contains(t, view.Posts[0].Content, "<br>")
		assert.Equal(t, domain.DefaultPosterName, view.Posts[0].Name)

		// deleted posts expose a placeholder, never the stored content
		assert.Equal(t, "削除されました", view.Posts[1].Content)
		assert.NotContains(t, rr.Body.String(), "秘密")
	})

	t.Run("not found", func(t *testing.T) {
		h, deps := newTestHandler(t)
		deps.threads.getFunc = func(id domain.ThreadId) (domain.Thread, error) {
			return domain.Thread{}, internal_errors.NotFound("スレッドが見つかりません")
		}
		router := testRouter(h)

		rr := doRequest(router, http.MethodGet, "/v1/threads/999", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		h, _ := newTestHandler(t)
		router := testRouter(h)

		rr := doRequest(router, http.MethodGet, "/v1/threads/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestSearchThreadsHandler(t *testing.T) {
	t.Run("passes keyword and optional board filter", func(t *testing.T) {
		h, deps := newTestHandler(t)
		var gotKeyword string
		var gotBoard *domain.BoardId
		deps.threads.searchFunc = func(keyword string, boardId *domain.BoardId) ([]domain.ThreadMetadata, error) {
			gotKeyword = keyword
			gotBoard = boardId
			return nil, nil
		}
		router := testRouter(h)

		rr := doRequest(router, http.MethodGet, "/v1/threads/search?q=go&board_id=2", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "go", gotKeyword)
		require.NotNil(t, gotBoard)
		assert.Equal(t, domain.BoardId(2), *gotBoard)
	})

	t.Run("missing keyword", func(t *testing.T) {
		h, deps := newTestHandler(t)
		deps.threads.searchFunc = func(keyword string, boardId *domain.BoardId) ([]domain.ThreadMetadata, error) {
			return nil, internal_errors.Validation("検索キーワードは必須です")
		}
		router := testRouter(h)

		rr := doRequest(router, http.MethodGet, "/v1/threads/search", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Zero(t, deps.audit.accessCount)
	})

	t.Run("records an access-log entry", func(t *testing.T) {
		h, deps := newTestHandler(t)
		deps.threads.searchFunc = func(keyword string, boardId *domain.BoardId) ([]domain.ThreadMetadata, error) {
			return nil, nil
		}
		router := testRouter(h)

		rr := doRequest(router, http.MethodGet, "/v1/threads/search?q=go&board_id=2", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 1, deps.audit.accessCount)
		assert.Equal(t, "search", deps.audit.lastAction)
		assert.Equal(t, "keyword: go, board_id: 2", deps.audit.lastDetails)
		assert.Equal(t, ident.Hash("192.0.2.1"), deps.audit.lastIdentity)
	})

	t.Run("board filter defaults to all in the log entry", func(t *testing.T) {
		h, deps := newTestHandler(t)
		deps.threads.searchFunc = func(keyword string, boardId *domain.BoardId) ([]domain.ThreadMetadata, error) {
			return nil, nil
		}
		router := testRouter(h)

		rr := doRequest(router, http.MethodGet, "/v1/threads/search?q=go", nil)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "keyword: go, board_id: all", deps.audit.lastDetails)
	})
}
