package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ayame-bbs/ayame/internal/domain"
	internal_errors "github.com/ayame-bbs/ayame/internal/errors"
)

// Live counts only consider non-deleted threads and posts.
const boardAggregateQuery = `
	SELECT
		b.id, b.name, b.description, b.category, b.created_at,
		COUNT(DISTINCT t.id) AS thread_count,
		COUNT(p.id) AS post_count
	FROM boards b
	LEFT JOIN threads t ON b.id = t.board_id AND t.is_deleted = FALSE
	LEFT JOIN posts p ON t.id = p.thread_id AND p.is_deleted = FALSE
`

func (s *Storage) GetBoard(id domain.BoardId) (domain.Board, error) {
	var b domain.Board
	err := s.db.QueryRow(
		boardAggregateQuery+` WHERE b.id = $1 GROUP BY b.id, b.name, b.description, b.category, b.created_at`,
		id,
	).Scan(&b.Id, &b.Name, &b.Description, &b.Category, &b.CreatedAt, &b.ThreadCount, &b.PostCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, internal_errors.NotFound("板が見つかりません")
		}
		return domain.Board{}, fmt.Errorf("failed to fetch board: %w", err)
	}
	return b, nil
}

func (s *Storage) ListBoards() ([]domain.Board, error) {
	rows, err := s.db.Query(
		boardAggregateQuery + `
		GROUP BY b.id, b.name, b.description, b.category, b.created_at
		ORDER BY b.category, b.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	defer rows.Close()

	var boards []domain.Board
	for rows.Next() {
		var b domain.Board
		if err := rows.Scan(&b.Id, &b.Name, &b.Description, &b.Category, &b.CreatedAt, &b.ThreadCount, &b.PostCount); err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return boards, nil
}
