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

// CreateThread inserts the thread row and its first post atomically. The
// thread starts at post_count=1 and the first post is always number 1.
func (s *Storage) CreateThread(ctx context.Context, creationData domain.ThreadCreationData) (domain.ThreadId, error) {
	var id domain.ThreadId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		// Verify board exists
		var boardId domain.BoardId
		err := tx.QueryRow("SELECT id FROM boards WHERE id = $1", creationData.BoardId).Scan(&boardId)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return internal_errors.NotFound("板が見つかりません")
			}
			return fmt.Errorf("failed to validate board: %w", err)
		}

		var createdAt time.Time
		err = tx.QueryRow(`
			INSERT INTO threads (board_id, title, creator_hash, post_count)
			VALUES ($1, $2, $3, 1)
			RETURNING id, created_at
		`, creationData.BoardId, creationData.Title, creationData.Creator).Scan(&id, &createdAt)
		if err != nil {
			return fmt.Errorf("failed to insert thread: %w", err)
		}

		first := creationData.FirstPost
		_, err = tx.Exec(`
			INSERT INTO posts (thread_id, post_number, name, email, content, creator_hash, created_at)
			VALUES ($1, 1, $2, $3, $4, $5, $6)
		`, id, first.Name, first.Email, first.Content, creationData.Creator, createdAt)
		if err != nil {
			return fmt.Errorf("failed to insert first post: %w", err)
		}

		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetThreadMetadata fetches the thread row without its posts. Cheaper than
// GetThread when only an existence or deleted check is needed.
func (s *Storage) GetThreadMetadata(id domain.ThreadId) (domain.ThreadMetadata, error) {
	var metadata domain.ThreadMetadata
	err := s.db.QueryRow(`
		SELECT
			t.id, t.board_id, b.name, t.title, t.creator_hash,
			t.post_count, t.created_at, t.updated_at, t.is_deleted
		FROM threads t
		JOIN boards b ON t.board_id = b.id
		WHERE t.id = $1
	`, id).Scan(
		&metadata.Id, &metadata.BoardId, &metadata.BoardName, &metadata.Title,
		&metadata.Creator, &metadata.PostCount, &metadata.CreatedAt,
		&metadata.UpdatedAt, &metadata.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ThreadMetadata{}, internal_errors.NotFound("スレッドが見つかりません")
		}
		return domain.ThreadMetadata{}, fmt.Errorf("failed to fetch thread metadata: %w", err)
	}
	return metadata, nil
}

func (s *Storage) GetThread(id domain.ThreadId) (domain.Thread, error) {
	metadata, err := s.GetThreadMetadata(id)
	if err != nil {
		return domain.Thread{}, err
	}

	rows, err := s.db.Query(`
		SELECT
			id, thread_id, post_number, name, email, content,
			creator_hash, created_at, is_deleted, deleted_reason
		FROM posts
		WHERE thread_id = $1
		ORDER BY post_number ASC
	`, id)
	if err != nil {
		return domain.Thread{}, fmt.Errorf("failed to fetch posts: %w", err)
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(
			&p.Id, &p.ThreadId, &p.PostNumber, &p.Name, &p.Email, &p.Content,
			&p.Creator, &p.CreatedAt, &p.IsDeleted, &p.DeletedReason,
		); err != nil {
			return domain.Thread{}, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, &p)
	}
	if err := rows.Err(); err != nil {
		return domain.Thread{}, fmt.Errorf("rows iteration error: %w", err)
	}

	return domain.Thread{ThreadMetadata: metadata, Posts: posts}, nil
}

// ListThreads returns the board's live threads, most recently bumped first.
func (s *Storage) ListThreads(boardId domain.BoardId) ([]domain.ThreadMetadata, error) {
	var exists domain.BoardId
	err := s.db.QueryRow("SELECT id FROM boards WHERE id = $1", boardId).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.NotFound("板が見つかりません")
		}
		return nil, fmt.Errorf("failed to validate board: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT
			t.id, t.board_id, b.name, t.title, t.creator_hash,
			t.post_count, t.created_at, t.updated_at, t.is_deleted
		FROM threads t
		JOIN boards b ON t.board_id = b.id
		WHERE t.board_id = $1 AND t.is_deleted = FALSE
		ORDER BY t.updated_at DESC
	`, boardId)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads: %w", err)
	}
	defer rows.Close()

	return scanThreadMetadata(rows)
}

// SearchThreads matches keyword against thread titles and post contents.
// Case-insensitive (ILIKE), most recently updated first, capped by limit.
func (s *Storage) SearchThreads(keyword string, boardId *domain.BoardId, limit int) ([]domain.ThreadMetadata, error) {
	pattern := "%" + escapeLike(keyword) + "%"
	query := `
		SELECT
			t.id, t.board_id, b.name, t.title, t.creator_hash,
			t.post_count, t.created_at, t.updated_at, t.is_deleted
		FROM threads t
		JOIN boards b ON t.board_id = b.id
		WHERE t.is_deleted = FALSE
		AND (t.title ILIKE $1 OR EXISTS (
			SELECT 1 FROM posts p
			WHERE p.thread_id = t.id AND p.is_deleted = FALSE AND p.content ILIKE $1
		))`
	args := []interface{}{pattern}
	if boardId != nil {
		query += " AND t.board_id = $2"
		args = append(args, *boardId)
	}
	query += fmt.Sprintf(" ORDER BY t.updated_at DESC LIMIT %d", limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search threads: %w", err)
	}
	defer rows.Close()

	return scanThreadMetadata(rows)
}

// LastThreadTime returns when the identity last created a thread, or nil.
func (s *Storage) LastThreadTime(identity domain.IdentityHash) (*time.Time, error) {
	var t time.Time
	err := s.db.QueryRow(`
		SELECT created_at FROM threads
		WHERE creator_hash = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, identity).Scan(&t)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch last thread time: %w", err)
	}
	return &t, nil
}

// SoftDeleteThread hides the thread and cascades to all its posts in one
// transaction. A partially-cascaded delete is never observable.
func (s *Storage) SoftDeleteThread(ctx context.Context, id domain.ThreadId, reason string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec("UPDATE threads SET is_deleted = TRUE WHERE id = $1", id)
		if err != nil {
			return fmt.Errorf("failed to delete thread: %w", err)
		}
		if affected, _ := result.RowsAffected(); affected == 0 {
			return internal_errors.NotFound("スレッドが見つかりません")
		}

		_, err = tx.Exec(`
			UPDATE posts
			SET is_deleted = TRUE, deleted_reason = $1
			WHERE thread_id = $2
		`, reason, id)
		if err != nil {
			return fmt.Errorf("failed to cascade thread deletion: %w", err)
		}

		return nil
	})
}

func scanThreadMetadata(rows *sql.Rows) ([]domain.ThreadMetadata, error) {
	var threads []domain.ThreadMetadata
	for rows.Next() {
		var m domain.ThreadMetadata
		if err := rows.Scan(
			&m.Id, &m.BoardId, &m.BoardName, &m.Title, &m.Creator,
			&m.PostCount, &m.CreatedAt, &m.UpdatedAt, &m.IsDeleted,
		); err != nil {
			return nil, fmt.Errorf("failed to scan thread: %w", err)
		}
		threads = append(threads, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return threads, nil
}
