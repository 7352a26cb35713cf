package service

import (
	"context"
	"time"

	"github.com/ayame-bbs/ayame/internal/domain"
	internal_errors "github.com/ayame-bbs/ayame/internal/errors"
)

type ModerationService interface {
	Ban(identity domain.IdentityHash, reason string, durationDays int) (domain.BanId, error)
	Unban(id domain.BanId) error
	ListBans() ([]domain.Ban, error)
	DeletePost(ctx context.Context, id domain.PostId, reason string) error
	DeleteThread(ctx context.Context, id domain.ThreadId, reason string) error
	Statistics() (domain.Stats, error)
	AccessLogs(limit, offset int) ([]domain.AccessLogEntry, int, error)
	ErrorLogs(limit, offset int) ([]domain.ErrorLogEntry, int, error)
}

type Moderation struct {
	storage ModerationStorage
}

type ModerationStorage interface {
	BanIdentity(identity domain.IdentityHash, reason string, expiresAt *time.Time) (domain.BanId, error)
	Unban(id domain.BanId) error
	ListBans() ([]domain.Ban, error)
	SoftDeletePost(ctx context.Context, id domain.PostId, reason string) error
	SoftDeleteThread(ctx context.Context, id domain.ThreadId, reason string) error
	Statistics() (domain.Stats, error)
	AccessLogs(limit, offset int) ([]domain.AccessLogEntry, int, error)
	ErrorLogs(limit, offset int) ([]domain.ErrorLogEntry, int, error)
}

func NewModeration(storage ModerationStorage) ModerationService {
	return &Moderation{storage}
}

// Ban blocks an identity hash. durationDays <= 0 means permanent.
func (m *Moderation) Ban(identity domain.IdentityHash, reason string, durationDays int) (domain.BanId, error) {
	if identity == "" {
		return 0, internal_errors.Validation("IPアドレスは必須です")
	}
	var expiresAt *time.Time
	if durationDays > 0 {
		t := time.Now().AddDate(0, 0, durationDays)
		expiresAt = &t
	}
	return m.storage.BanIdentity(identity, reason, expiresAt)
}

func (m *Moderation) Unban(id domain.BanId) error {
	return m.storage.Unban(id)
}

func (m *Moderation) ListBans() ([]domain.Ban, error) {
	return m.storage.ListBans()
}

func (m *Moderation) DeletePost(ctx context.Context, id domain.PostId, reason string) error {
	return m.storage.SoftDeletePost(ctx, id, reason)
}

func (m *Moderation) DeleteThread(ctx context.Context, id domain.ThreadId, reason string) error {
	return m.storage.SoftDeleteThread(ctx, id, reason)
}

func (m *Moderation) Statistics() (domain.Stats, error) {
	return m.storage.Statistics()
}

func (m *Moderation) AccessLogs(limit, offset int) ([]domain.AccessLogEntry, int, error) {
	return m.storage.AccessLogs(limit, offset)
}

func (m *Moderation) ErrorLogs(limit, offset int) ([]domain.ErrorLogEntry, int, error) {
	return m.storage.ErrorLogs(limit, offset)
}
