package pg

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayame-bbs/ayame/internal/domain"
	internal_errors "github.com/ayame-bbs/ayame/internal/errors"
)

var testThread = domain.ThreadCreationData{
	BoardId: 1,
	Title:   "今日の雑談",
	Creator: "aabbccdd11223344",
	FirstPost: domain.PostCreationData{
		Name:    "",
		Email:   "",
		Content: "最初の投稿",
	},
}

func TestCreateThread(t *testing.T) {
	t.Run("thread and first post land in one transaction", func(t *testing.T) {
		s, mock := newMockStorage(t)
		createdAt := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM boards").
			WithArgs(testThread.BoardId).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery("INSERT INTO threads").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, createdAt))
		mock.ExpectExec("INSERT INTO posts").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		id, err := s.CreateThread(context.Background(), testThread)

		require.NoError(t, err)
		assert.Equal(t, domain.ThreadId(11), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown board", func(t *testing.T) {
		s, mock := newMockStorage(t)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM boards").
			WithArgs(testThread.BoardId).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))
		mock.ExpectRollback()

		_, err := s.CreateThread(context.Background(), testThread)

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, internal_errors.StatusCode(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("first post failure rolls back the thread", func(t *testing.T) {
		s, mock := newMockStorage(t)
		createdAt := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id FROM boards").
			WithArgs(testThread.BoardId).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
		mock.ExpectQuery("INSERT INTO threads").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(11, createdAt))
		mock.ExpectExec("INSERT INTO posts").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		_, err := s.CreateThread(context.Background(), testThread)

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSoftDeleteThread(t *testing.T) {
	t.Run("cascades to posts", func(t *testing.T) {
		s, mock := newMockStorage(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE threads").
			WithArgs(int64(11)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE posts").
			WithArgs("spam", int64(11)).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		err := s.SoftDeleteThread(context.Background(), 11, "spam")

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing thread is not found", func(t *testing.T) {
		s, mock := newMockStorage(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE threads").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := s.SoftDeleteThread(context.Background(), 999, "spam")

		require.Error(t, err)
		assert.Equal(t, http.StatusNotFound, internal_errors.StatusCode(err))
	})

	t.Run("cascade failure rolls back the thread flag", func(t *testing.T) {
		s, mock := newMockStorage(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE threads").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE posts").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := s.SoftDeleteThread(context.Background(), 11, "spam")

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSearchThreads(t *testing.T) {
	t.Run("escapes LIKE wildcards in the keyword", func(t *testing.T) {
		s, mock := newMockStorage(t)

		mock.ExpectQuery("ILIKE").
			WithArgs(`%100\%本気%`).
			WillReturnRows(threadRows())

		_, err := s.SearchThreads("100%本気", nil, 100)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("optional board filter", func(t *testing.T) {
		s, mock := newMockStorage(t)
		boardId := domain.BoardId(2)

		mock.ExpectQuery("ILIKE").
			WithArgs("%go%", int64(2)).
			WillReturnRows(threadRows())

		_, err := s.SearchThreads("go", &boardId, 100)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func threadRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "board_id", "name", "title", "creator_hash",
		"post_count", "created_at", "updated_at", "is_deleted",
	})
}
