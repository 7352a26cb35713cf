package pg

import (
	"fmt"
	"time"

	"github.com/ayame-bbs/ayame/internal/domain"
	internal_errors "github.com/ayame-bbs/ayame/internal/errors"
)

// BanIdentity inserts a ban row. A nil expiresAt makes the ban permanent.
func (s *Storage) BanIdentity(identity domain.IdentityHash, reason string, expiresAt *time.Time) (domain.BanId, error) {
	var id domain.BanId
	err := s.db.QueryRow(`
		INSERT INTO banned_identities (identity_hash, reason, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, identity, reason, expiresAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert ban: %w", err)
	}
	return id, nil
}

func (s *Storage) Unban(id domain.BanId) error {
	result, err := s.db.Exec("DELETE FROM banned_identities WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete ban: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("規制が見つかりません")
	}
	return nil
}

// IsBanned reports whether any non-expired ban matches the identity.
func (s *Storage) IsBanned(identity domain.IdentityHash) (bool, error) {
	var banned bool
	err := s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM banned_identities
			WHERE identity_hash = $1
			AND (expires_at IS NULL OR expires_at > now())
		)
	`, identity).Scan(&banned)
	if err != nil {
		return false, fmt.Errorf("failed to check ban: %w", err)
	}
	return banned, nil
}

func (s *Storage) ListBans() ([]domain.Ban, error) {
	rows, err := s.db.Query(`
		SELECT id, identity_hash, reason, expires_at, created_at
		FROM banned_identities
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bans: %w", err)
	}
	defer rows.Close()

	var bans []domain.Ban
	for rows.Next() {
		var b domain.Ban
		if err := rows.Scan(&b.Id, &b.Identity, &b.Reason, &b.ExpiresAt, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ban: %w", err)
		}
		bans = append(bans, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return bans, nil
}
