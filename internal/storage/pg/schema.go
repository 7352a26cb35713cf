package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ayame-bbs/ayame/internal/logger"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS boards (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS threads (
		id BIGSERIAL PRIMARY KEY,
		board_id BIGINT NOT NULL REFERENCES boards (id),
		title TEXT NOT NULL,
		creator_hash TEXT NOT NULL,
		post_count INT NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	// UNIQUE (thread_id, post_number) backstops the FOR UPDATE lock taken
	// in CreatePost: even if the lock were bypassed, two posts could never
	// commit the same number.
	`CREATE TABLE IF NOT EXISTS posts (
		id BIGSERIAL PRIMARY KEY,
		thread_id BIGINT NOT NULL REFERENCES threads (id),
		post_number INT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		creator_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
		deleted_reason TEXT NOT NULL DEFAULT '',
		UNIQUE (thread_id, post_number)
	)`,
	`CREATE TABLE IF NOT EXISTS banned_identities (
		id BIGSERIAL PRIMARY KEY,
		identity_hash TEXT NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		expires_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS admins (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		pass_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS access_logs (
		id BIGSERIAL PRIMARY KEY,
		identity_hash TEXT NOT NULL,
		action TEXT NOT NULL,
		resource_id TEXT NOT NULL DEFAULT '',
		details TEXT NOT NULL DEFAULT '',
		request_id TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS error_logs (
		id BIGSERIAL PRIMARY KEY,
		identity_hash TEXT NOT NULL DEFAULT '',
		error_type TEXT NOT NULL,
		error_message TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_threads_board_id ON threads (board_id)`,
	`CREATE INDEX IF NOT EXISTS idx_threads_creator_hash ON threads (creator_hash, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_thread_id ON posts (thread_id)`,
	`CREATE INDEX IF NOT EXISTS idx_posts_creator_hash ON posts (creator_hash, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_access_logs_created_at ON access_logs (created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_banned_identities_hash ON banned_identities (identity_hash)`,
}

// seedBoards matches the boards the original site launched with. They are
// inserted only when the boards table is empty.
var seedBoards = []struct {
	name, description, category string
}{
	{"雑談", "何でも話せる雑談板", "一般"},
	{"ニュース", "最新ニュースについて語る板", "一般"},
	{"プログラミング", "プログラミングに関する話題", "技術"},
	{"ゲーム", "ゲームに関する話題", "趣味"},
	{"アニメ", "アニメに関する話題", "趣味"},
}

// AdminSeed is the initial admin account. The password hash is computed by
// the caller; this package never sees plaintext credentials.
type AdminSeed struct {
	Username string
	PassHash string
}

// InitSchema creates all tables and indexes and inserts seed data on first
// run. Safe to call on every startup.
func (s *Storage) InitSchema(ctx context.Context, admin AdminSeed) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("failed to apply schema statement: %w", err)
			}
		}

		var boardCount int
		if err := tx.QueryRow("SELECT COUNT(*) FROM boards").Scan(&boardCount); err != nil {
			return fmt.Errorf("failed to count boards: %w", err)
		}
		if boardCount == 0 {
			for _, b := range seedBoards {
				if _, err := tx.Exec(
					"INSERT INTO boards (name, description, category) VALUES ($1, $2, $3)",
					b.name, b.description, b.category,
				); err != nil {
					return fmt.Errorf("failed to seed board %q: %w", b.name, err)
				}
			}
			logger.Log.Info("seeded boards", "count", len(seedBoards))
		}

		if admin.Username != "" {
			if _, err := tx.Exec(`
				INSERT INTO admins (username, pass_hash)
				VALUES ($1, $2)
				ON CONFLICT (username) DO NOTHING
			`, admin.Username, admin.PassHash); err != nil {
				return fmt.Errorf("failed to seed admin account: %w", err)
			}
		}

		return nil
	})
}
