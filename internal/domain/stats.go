package domain

// Stats is the admin dashboard aggregate. Read-only, best-effort snapshot:
// numbers may be slightly stale relative to concurrent writes.
type Stats struct {
	Summary StatsSummary
	Boards  []BoardStat
	Hourly  []BucketCount
	Daily   []BucketCount
}

type StatsSummary struct {
	BoardCount    int
	ThreadCount   int
	PostCount     int
	ActiveThreads int // threads updated within the last 24h
	TodayPosts    int
	BannedCount   int // non-expired bans
}

type BoardStat struct {
	Id          BoardId
	Name        string
	ThreadCount int
	PostCount   int
}

// BucketCount is one histogram bucket ("13" for an hour, "2026-08-29" for a day).
type BucketCount struct {
	Bucket string
	Count  int
}
