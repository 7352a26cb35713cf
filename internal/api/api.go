// Package api holds the request and response DTOs of the HTTP surface.
// Response views carry rendered HTML fragments ready for embedding;
// raw user input never appears in a response.
package api

import (
	"time"

	"github.com/ayame-bbs/ayame/internal/domain"
)

// Request DTOs

type CreateThreadRequest struct {
	BoardId int64  `json:"board_id" validate:"required"`
	Title   string `json:"title" validate:"required"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Content string `json:"content" validate:"required"`
}

type CreatePostRequest struct {
	ThreadId int64  `json:"thread_id" validate:"required"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Content  string `json:"content" validate:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type BanRequest struct {
	Identity     string `json:"identity" validate:"required"`
	Reason       string `json:"reason"`
	DurationDays int    `json:"duration_days,omitempty"` // 0 means permanent
}

type DeleteRequest struct {
	Reason string `json:"reason"`
}

// Response DTOs

type CreateThreadResponse struct {
	Id domain.ThreadId `json:"id"`
}

type CreatePostResponse struct {
	Id         domain.PostId `json:"id"`
	PostNumber int           `json:"post_number"`
}

type BanResponse struct {
	Id domain.BanId `json:"id"`
}

type BoardsResponse struct {
	Boards []domain.Board `json:"boards"`
}

// PostView is a display-ready post. Name falls back to the anonymous
// default and Content is rendered HTML.
type PostView struct {
	Id            domain.PostId `json:"id"`
	PostNumber    int           `json:"post_number"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Content       string        `json:"content"`
	CreatedAt     time.Time     `json:"created_at"`
	IsDeleted     bool          `json:"is_deleted"`
	DeletedReason string        `json:"deleted_reason,omitempty"`
}

type ThreadView struct {
	Id        domain.ThreadId `json:"id"`
	BoardId   domain.BoardId  `json:"board_id"`
	BoardName string          `json:"board_name"`
	Title     string          `json:"title"`
	PostCount int             `json:"post_count"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Posts     []PostView      `json:"posts,omitempty"`
}

type ThreadsResponse struct {
	Threads []ThreadView `json:"threads"`
}

// BanView annotates a ban with whether it is currently in force.
type BanView struct {
	domain.Ban
	Active bool `json:"active"`
}

type BansResponse struct {
	Bans []BanView `json:"bans"`
}

type AccessLogsResponse struct {
	Logs  []domain.AccessLogEntry `json:"logs"`
	Total int                     `json:"total"`
}

type ErrorLogsResponse struct {
	Logs  []domain.ErrorLogEntry `json:"logs"`
	Total int                    `json:"total"`
}

type StatsResponse struct {
	Summary domain.StatsSummary  `json:"summary"`
	Boards  []domain.BoardStat   `json:"boards"`
	Hourly  []domain.BucketCount `json:"hourly"`
	Daily   []domain.BucketCount `json:"daily"`
}
