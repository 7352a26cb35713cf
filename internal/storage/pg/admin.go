package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/ayame-bbs/ayame/internal/domain"
	internal_errors "github.com/ayame-bbs/ayame/internal/errors"
)

func (s *Storage) Admin(username string) (domain.Admin, error) {
	var a domain.Admin
	err := s.db.QueryRow(`
		SELECT id, username, pass_hash, created_at
		FROM admins
		WHERE username = $1
	`, username).Scan(&a.Id, &a.Username, &a.PassHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Admin{}, internal_errors.NotFound("管理者が見つかりません")
		}
		return domain.Admin{}, fmt.Errorf("failed to fetch admin: %w", err)
	}
	return a, nil
}
