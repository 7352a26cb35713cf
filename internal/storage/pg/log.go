package pg

import (
	"fmt"

	"github.com/ayame-bbs/ayame/internal/domain"
)

// Log writes are called best-effort by the service layer: errors returned
// here get logged and dropped, never surfaced to the client.

func (s *Storage) AppendAccessLog(entry domain.AccessLogEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO access_logs (identity_hash, action, resource_id, details, request_id)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.Identity, entry.Action, entry.ResourceId, entry.Details, entry.RequestId)
	if err != nil {
		return fmt.Errorf("failed to append access log: %w", err)
	}
	return nil
}

func (s *Storage) AppendErrorLog(entry domain.ErrorLogEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO error_logs (identity_hash, error_type, error_message)
		VALUES ($1, $2, $3)
	`, entry.Identity, entry.ErrorType, entry.ErrorMessage)
	if err != nil {
		return fmt.Errorf("failed to append error log: %w", err)
	}
	return nil
}

func (s *Storage) AccessLogs(limit, offset int) ([]domain.AccessLogEntry, int, error) {
	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM access_logs").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count access logs: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT id, identity_hash, action, resource_id, details, request_id, created_at
		FROM access_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch access logs: %w", err)
	}
	defer rows.Close()

	var entries []domain.AccessLogEntry
	for rows.Next() {
		var e domain.AccessLogEntry
		if err := rows.Scan(&e.Id, &e.Identity, &e.Action, &e.ResourceId, &e.Details, &e.RequestId, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan access log: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return entries, total, nil
}

func (s *Storage) ErrorLogs(limit, offset int) ([]domain.ErrorLogEntry, int, error) {
	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM error_logs").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count error logs: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT id, identity_hash, error_type, error_message, created_at
		FROM error_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch error logs: %w", err)
	}
	defer rows.Close()

	var entries []domain.ErrorLogEntry
	for rows.Next() {
		var e domain.ErrorLogEntry
		if err := rows.Scan(&e.Id, &e.Identity, &e.ErrorType, &e.ErrorMessage, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan error log: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration error: %w", err)
	}
	return entries, total, nil
}
