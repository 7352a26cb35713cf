package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ayame-bbs/ayame/internal/domain"
	internal_errors "github.com/ayame-bbs/ayame/internal/errors"
)

// CreatePost inserts a post and bumps the parent thread's counter in one
// transaction. The thread row is locked FOR UPDATE first, which serializes
// concurrent posts to the same thread: max(post_number)+1 cannot be computed
// twice for the same value. The UNIQUE (thread_id, post_number) constraint
// backstops the lock.
func (s *Storage) CreatePost(ctx context.Context, creationData domain.PostCreationData, allowDeletedThread bool) (domain.PostId, error) {
	var id domain.PostId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var isDeleted bool
		err := tx.QueryRow(
			"SELECT is_deleted FROM threads WHERE id = $1 FOR UPDATE",
			creationData.ThreadId,
		).Scan(&isDeleted)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return internal_errors.NotFound("スレッドが見つかりません")
			}
			return fmt.Errorf("failed to lock thread: %w", err)
		}
		if isDeleted && !allowDeletedThread {
			return internal_errors.Forbidden("このスレッドには投稿できません")
		}

		createdAt := time.Now().UTC()
		err = tx.QueryRow(`
			INSERT INTO posts (thread_id, post_number, name, email, content, creator_hash, created_at)
			SELECT $1, COALESCE(MAX(post_number), 0) + 1, $2, $3, $4, $5, $6
			FROM posts WHERE thread_id = $1
			RETURNING id
		`, creationData.ThreadId, creationData.Name, creationData.Email,
			creationData.Content, creationData.Creator, createdAt).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert post: %w", err)
		}

		_, err = tx.Exec(`
			UPDATE threads
			SET post_count = post_count + 1, updated_at = $1
			WHERE id = $2
		`, createdAt, creationData.ThreadId)
		if err != nil {
			return fmt.Errorf("failed to bump thread counter: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Storage) GetPost(id domain.PostId) (domain.Post, error) {
	var p domain.Post
	err := s.db.QueryRow(`
		SELECT
			id, thread_id, post_number, name, email, content,
			creator_hash, created_at, is_deleted, deleted_reason
		FROM posts
		WHERE id = $1
	`, id).Scan(
		&p.Id, &p.ThreadId, &p.PostNumber, &p.Name, &p.Email, &p.Content,
		&p.Creator, &p.CreatedAt, &p.IsDeleted, &p.DeletedReason,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, internal_errors.NotFound("投稿が見つかりません")
		}
		return domain.Post{}, fmt.Errorf("failed to fetch post: %w", err)
	}
	return p, nil
}

// LastPostTime returns when the identity last posted, or nil.
func (s *Storage) LastPostTime(identity domain.IdentityHash) (*time.Time, error) {
	var t time.Time
	err := s.db.QueryRow(`
		SELECT created_at FROM posts
		WHERE creator_hash = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, identity).Scan(&t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch last post time: %w", err)
	}
	return &t, nil
}

// CountPostsSince counts the identity's posts created at or after since.
// Feeds the daily posting limit.
func (s *Storage) CountPostsSince(identity domain.IdentityHash, since time.Time) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM posts
		WHERE creator_hash = $1 AND created_at >= $2
	`, identity, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// SoftDeletePost hides one post. Sibling posts and the parent thread's
// deleted flag are untouched.
func (s *Storage) SoftDeletePost(ctx context.Context, id domain.PostId, reason string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec(`
			UPDATE posts
			SET is_deleted = TRUE, deleted_reason = $1
			WHERE id = $2
		`, reason, id)
		if err != nil {
			return fmt.Errorf("failed to delete post: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return internal_errors.NotFound("投稿が見つかりません")
		}
		return nil
	})
}
