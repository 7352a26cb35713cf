package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayame-bbs/ayame/internal/domain"
	internal_errors "github.com/ayame-bbs/ayame/internal/errors"
)

// --- Mocks ---

type MockPostStorage struct {
	createPostFunc      func(creationData domain.PostCreationData, allowDeletedThread bool) (domain.PostId, error)
	getPostFunc         func(id domain.PostId) (domain.Post, error)
	getThreadMetaFunc   func(id domain.ThreadId) (domain.ThreadMetadata, error)
	lastPostTimeFunc    func(identity domain.IdentityHash) (*time.Time, error)
	countPostsSinceFunc func(identity domain.IdentityHash, since time.Time) (int, error)

	createPostCalled  bool
	allowDeletedArg   bool
	countSinceCalled  bool
	lastPostTimeCalls int
}

func (m *MockPostStorage) CreatePost(_ context.Context, creationData domain.PostCreationData, allowDeletedThread bool) (domain.PostId, error) {
	m.createPostCalled = true
	m.allowDeletedArg = allowDeletedThread
	if m.createPostFunc != nil {
		return m.createPostFunc(creationData, allowDeletedThread)
	}
	return 1, nil
}

func (m *MockPostStorage) GetPost(id domain.PostId) (domain.Post, error) {
	if m.getPostFunc != nil {
		return m.getPostFunc(id)
	}
	return domain.Post{Id: id}, nil
}

func (m *MockPostStorage) GetThreadMetadata(id domain.ThreadId) (domain.ThreadMetadata, error) {
	if m.getThreadMetaFunc != nil {
		return m.getThreadMetaFunc(id)
	}
	return domain.ThreadMetadata{Id: id}, nil
}

func (m *MockPostStorage) LastPostTime(identity domain.IdentityHash) (*time.Time, error) {
	m.lastPostTimeCalls++
	if m.lastPostTimeFunc != nil {
		return m.lastPostTimeFunc(identity)
	}
	return nil, nil
}

func (m *MockPostStorage) CountPostsSince(identity domain.IdentityHash, since time.Time) (int, error) {
	m.countSinceCalled = true
	if m.countPostsSinceFunc != nil {
		return m.countPostsSinceFunc(identity, since)
	}
	return 0, nil
}

// --- Helpers ---

func validPostData() domain.PostCreationData {
	return domain.PostCreationData{
		ThreadId: 7,
		Content:  "それな",
		Creator:  "aabbccdd11223344",
	}
}

// --- Tests ---

func TestPostCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		storage := &MockPostStorage{}
		svc := NewPost(storage, &MockBanChecker{}, testPublicConfig())

		id, err := svc.Create(ctx, validPostData())

		require.NoError(t, err)
		assert.Equal(t, domain.PostId(1), id)
		assert.True(t, storage.createPostCalled)
		assert.False(t, storage.allowDeletedArg)
	})

	t.Run("content at the limit passes, one over fails", func(t *testing.T) {
		svc := NewPost(&MockPostStorage{}, &MockBanChecker{}, testPublicConfig())

		creationData := validPostData()
		creationData.Content = strings.Repeat("あ", 1000)
		_, err := svc.Create(ctx, creationData)
		require.NoError(t, err)

		creationData.Content = strings.Repeat("あ", 1001)
		_, err = svc.Create(ctx, creationData)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, internal_errors.StatusCode(err))
	})

	t.Run("name too long", func(t *testing.T) {
		svc := NewPost(&MockPostStorage{}, &MockBanChecker{}, testPublicConfig())

		creationData := validPostData()
		creationData.Name = strings.Repeat("あ", 31)
		_, err := svc.Create(ctx, creationData)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "名前は30文字以内")
	})

	t.Run("unknown thread short-circuits before rate checks", func(t *testing.T) {
		storage := &MockPostStorage{
			getThreadMetaFunc: func(id domain.ThreadId) (domain.ThreadMetadata, error) {
				return domain.ThreadMetadata{}, internal_errors.NotFound("スレッドが見つかりません")
			},
		}
		svc := NewPost(storage, &MockBanChecker{}, testPublicConfig())

		_, err := svc.Create(ctx, validPostData())

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, internal_errors.StatusCode(err))
		assert.Zero(t, storage.lastPostTimeCalls)
	})

	t.Run("banned identity", func(t *testing.T) {
		storage := &MockPostStorage{}
		bans := &MockBanChecker{isBannedFunc: func(identity domain.IdentityHash) (bool, error) {
			return true, nil
		}}
		svc := NewPost(storage, bans, testPublicConfig())

		_, err := svc.Create(ctx, validPostData())

		require.Error(t, err)
		assert.Equal(t, http.StatusForbidden, internal_errors.StatusCode(err))
		assert.False(t, storage.createPostCalled)
	})

	t.Run("banned word in content", func(t *testing.T) {
		svc := NewPost(&MockPostStorage{}, &MockBanChecker{}, testPublicConfig())

		creationData := validPostData()
		creationData.Content = "これはSpamです"
		_, err := svc.Create(ctx, creationData)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "禁止ワード")
	})

	t.Run("posting interval not elapsed", func(t *testing.T) {
		recent := time.Now().Add(-10 * time.Second)
		storage := &MockPostStorage{
			lastPostTimeFunc: func(identity domain.IdentityHash) (*time.Time, error) {
				return &recent, nil
			},
		}
		svc := NewPost(storage, &MockBanChecker{}, testPublicConfig())

		_, err := svc.Create(ctx, validPostData())

		require.Error(t, err)
		assert.Equal(t, http.StatusTooManyRequests, internal_errors.StatusCode(err))
		assert.Contains(t, err.Error(), "30秒お待ちください")
		assert.False(t, storage.countSinceCalled) // short-circuit
	})

	t.Run("daily limit reached", func(t *testing.T) {
		storage := &MockPostStorage{
			countPostsSinceFunc: func(identity domain.IdentityHash, since time.Time) (int, error) {
				return 50, nil
			},
		}
		svc := NewPost(storage, &MockBanChecker{}, testPublicConfig())

		_, err := svc.Create(ctx, validPostData())

		require.Error(t, err)
		assert.Equal(t, http.StatusTooManyRequests, internal_errors.StatusCode(err))
		assert.Contains(t, err.Error(), "1日の投稿上限")
		assert.False(t, storage.createPostCalled)
	})

	t.Run("one below the daily limit passes", func(t *testing.T) {
		storage := &MockPostStorage{
			countPostsSinceFunc: func(identity domain.IdentityHash, since time.Time) (int, error) {
				return 49, nil
			},
		}
		svc := NewPost(storage, &MockBanChecker{}, testPublicConfig())

		_, err := svc.Create(ctx, validPostData())

		require.NoError(t, err)
		assert.True(t, storage.createPostCalled)
	})

	t.Run("deleted-thread posting follows config", func(t *testing.T) {
		storage := &MockPostStorage{}
		cfg := testPublicConfig()
		cfg.AllowPostingToDeleted = true
		svc := NewPost(storage, &MockBanChecker{}, cfg)

		_, err := svc.Create(ctx, validPostData())

		require.NoError(t, err)
		assert.True(t, storage.allowDeletedArg)
	})
}
