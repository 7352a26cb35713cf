package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ayame-bbs/ayame/internal/config"
	"github.com/ayame-bbs/ayame/internal/domain"
	internal_errors "github.com/ayame-bbs/ayame/internal/errors"
	"github.com/ayame-bbs/ayame/internal/policy"
)

type PostService interface {
	Create(ctx context.Context, creationData domain.PostCreationData) (domain.PostId, error)
	Get(id domain.PostId) (domain.Post, error)
}

type Post struct {
	storage PostStorage
	bans    BanChecker
	cfg     *config.Public
}

type PostStorage interface {
	CreatePost(ctx context.Context, creationData domain.PostCreationData, allowDeletedThread bool) (domain.PostId, error)
	GetPost(id domain.PostId) (domain.Post, error)
	GetThreadMetadata(id domain.ThreadId) (domain.ThreadMetadata, error)
	LastPostTime(identity domain.IdentityHash) (*time.Time, error)
	CountPostsSince(identity domain.IdentityHash, since time.Time) (int, error)
}

func NewPost(storage PostStorage, bans BanChecker, cfg *config.Public) PostService {
	return &Post{storage, bans, cfg}
}

// Create runs the write-policy pipeline and persists the post. Check order
// is fixed: length limits, thread existence, ban, banned words, posting
// interval, daily limit. The storage layer re-checks the thread inside its
// transaction, so a thread deleted between the existence check and the
// insert still cannot gain a post.
func (p *Post) Create(ctx context.Context, creationData domain.PostCreationData) (domain.PostId, error) {
	if !policy.WithinLength(creationData.Content, p.cfg.MaxContentLength) {
		return 0, internal_errors.Validation(fmt.Sprintf("本文は%d文字以内で入力してください", p.cfg.MaxContentLength))
	}
	if !policy.WithinLength(creationData.Name, p.cfg.MaxNameLength) {
		return 0, internal_errors.Validation(fmt.Sprintf("名前は%d文字以内で入力してください", p.cfg.MaxNameLength))
	}
	if !policy.WithinLength(creationData.Email, p.cfg.MaxEmailLength) {
		return 0, internal_errors.Validation(fmt.Sprintf("メールアドレスは%d文字以内で入力してください", p.cfg.MaxEmailLength))
	}

	if _, err := p.storage.GetThreadMetadata(creationData.ThreadId); err != nil {
		return 0, err
	}

	banned, err := p.bans.IsBanned(creationData.Creator)
	if err != nil {
		return 0, err
	}
	if banned {
		return 0, internal_errors.Forbidden("アクセスが制限されています")
	}

	if policy.ContainsBannedTerm(creationData.Content, p.cfg.BannedWords) {
		return 0, internal_errors.Validation("投稿に禁止ワードが含まれています")
	}

	now := time.Now()
	lastPosted, err := p.storage.LastPostTime(creationData.Creator)
	if err != nil {
		return 0, err
	}
	if !policy.WithinInterval(lastPosted, now, p.cfg.PostInterval()) {
		return 0, internal_errors.RateLimited(fmt.Sprintf("連続投稿はできません。%d秒お待ちください", p.cfg.PostIntervalSeconds))
	}

	countToday, err := p.storage.CountPostsSince(creationData.Creator, now.Add(-24*time.Hour))
	if err != nil {
		return 0, err
	}
	if !policy.WithinDailyLimit(countToday, p.cfg.MaxPostsPerDay) {
		return 0, internal_errors.RateLimited(fmt.Sprintf("1日の投稿上限（%d件）に達しました", p.cfg.MaxPostsPerDay))
	}

	return p.storage.CreatePost(ctx, creationData, p.cfg.AllowPostingToDeleted)
}

func (p *Post) Get(id domain.PostId) (domain.Post, error) {
	return p.storage.GetPost(id)
}
