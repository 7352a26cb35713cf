package pg

import (
	"fmt"

	"github.com/ayame-bbs/ayame/internal/domain"
)

// Statistics runs the admin dashboard aggregates. Plain reads, no
// transaction: the snapshot is best-effort under concurrent writes.
func (s *Storage) Statistics() (domain.Stats, error) {
	var stats domain.Stats

	summaryQueries := []struct {
		dest  *int
		query string
	}{
		{&stats.Summary.BoardCount, "SELECT COUNT(*) FROM boards"},
		{&stats.Summary.ThreadCount, "SELECT COUNT(*) FROM threads WHERE is_deleted = FALSE"},
		{&stats.Summary.PostCount, "SELECT COUNT(*) FROM posts WHERE is_deleted = FALSE"},
		{&stats.Summary.ActiveThreads, "SELECT COUNT(*) FROM threads WHERE is_deleted = FALSE AND updated_at > now() - interval '1 day'"},
		{&stats.Summary.TodayPosts, "SELECT COUNT(*) FROM posts WHERE created_at >= date_trunc('day', now())"},
		{&stats.Summary.BannedCount, "SELECT COUNT(*) FROM banned_identities WHERE expires_at IS NULL OR expires_at > now()"},
	}
	for _, q := range summaryQueries {
		if err := s.db.QueryRow(q.query).Scan(q.dest); err != nil {
			return domain.Stats{}, fmt.Errorf("failed to fetch summary stat: %w", err)
		}
	}

	boardRows, err := s.db.Query(`
		SELECT
			b.id, b.name,
			COUNT(DISTINCT t.id) AS thread_count,
			COUNT(p.id) AS post_count
		FROM boards b
		LEFT JOIN threads t ON b.id = t.board_id AND t.is_deleted = FALSE
		LEFT JOIN posts p ON t.id = p.thread_id AND p.is_deleted = FALSE
		GROUP BY b.id, b.name
		ORDER BY post_count DESC
	`)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("failed to fetch board stats: %w", err)
	}
	defer boardRows.Close()
	for boardRows.Next() {
		var bs domain.BoardStat
		if err := boardRows.Scan(&bs.Id, &bs.Name, &bs.ThreadCount, &bs.PostCount); err != nil {
			return domain.Stats{}, fmt.Errorf("failed to scan board stat: %w", err)
		}
		stats.Boards = append(stats.Boards, bs)
	}
	if err := boardRows.Err(); err != nil {
		return domain.Stats{}, fmt.Errorf("rows iteration error: %w", err)
	}

	stats.Hourly, err = s.bucketCounts(`
		SELECT to_char(created_at, 'HH24') AS bucket, COUNT(*)
		FROM posts
		WHERE created_at > now() - interval '1 day'
		GROUP BY bucket
		ORDER BY bucket
	`)
	if err != nil {
		return domain.Stats{}, err
	}

	stats.Daily, err = s.bucketCounts(`
		SELECT to_char(created_at, 'YYYY-MM-DD') AS bucket, COUNT(*)
		FROM posts
		WHERE created_at > now() - interval '30 days'
		GROUP BY bucket
		ORDER BY bucket
	`)
	if err != nil {
		return domain.Stats{}, err
	}

	return stats, nil
}

func (s *Storage) bucketCounts(query string) ([]domain.BucketCount, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch histogram: %w", err)
	}
	defer rows.Close()

	var buckets []domain.BucketCount
	for rows.Next() {
		var b domain.BucketCount
		if err := rows.Scan(&b.Bucket, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan histogram bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return buckets, nil
}
