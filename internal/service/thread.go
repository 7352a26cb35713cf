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

type ThreadService interface {
	Create(ctx context.Context, creationData domain.ThreadCreationData) (domain.ThreadId, error)
	Get(id domain.ThreadId) (domain.Thread, error)
	List(boardId domain.BoardId) ([]domain.ThreadMetadata, error)
	Search(keyword string, boardId *domain.BoardId) ([]domain.ThreadMetadata, error)
}

type Thread struct {
	storage ThreadStorage
	bans    BanChecker
	cfg     *config.Public
}

type ThreadStorage interface {
	CreateThread(ctx context.Context, creationData domain.ThreadCreationData) (domain.ThreadId, error)
	GetThread(id domain.ThreadId) (domain.Thread, error)
	ListThreads(boardId domain.BoardId) ([]domain.ThreadMetadata, error)
	SearchThreads(keyword string, boardId *domain.BoardId, limit int) ([]domain.ThreadMetadata, error)
	LastThreadTime(identity domain.IdentityHash) (*time.Time, error)
	GetBoard(id domain.BoardId) (domain.Board, error)
}

// BanChecker is shared by the thread and post services: the same identity
// hash is consulted for both kinds of write.
type BanChecker interface {
	IsBanned(identity domain.IdentityHash) (bool, error)
}

func NewThread(storage ThreadStorage, bans BanChecker, cfg *config.Public) ThreadService {
	return &Thread{storage, bans, cfg}
}

// Create runs the write-policy pipeline and persists the thread with its
// first post. Check order is fixed: length limits, board existence, ban,
// banned words, creation interval. The first failure is returned and the
// rest are not evaluated.
func (t *Thread) Create(ctx context.Context, creationData domain.ThreadCreationData) (domain.ThreadId, error) {
	first := creationData.FirstPost

	if !policy.WithinLength(creationData.Title, t.cfg.MaxTitleLength) {
		return 0, internal_errors.Validation(fmt.Sprintf("タイトルは%d文字以内で入力してください", t.cfg.MaxTitleLength))
	}
	if !policy.WithinLength(first.Content, t.cfg.MaxContentLength) {
		return 0, internal_errors.Validation(fmt.Sprintf("本文は%d文字以内で入力してください", t.cfg.MaxContentLength))
	}
	if !policy.WithinLength(first.Name, t.cfg.MaxNameLength) {
		return 0, internal_errors.Validation(fmt.Sprintf("名前は%d文字以内で入力してください", t.cfg.MaxNameLength))
	}
	if !policy.WithinLength(first.Email, t.cfg.MaxEmailLength) {
		return 0, internal_errors.Validation(fmt.Sprintf("メールアドレスは%d文字以内で入力してください", t.cfg.MaxEmailLength))
	}

	if _, err := t.storage.GetBoard(creationData.BoardId); err != nil {
		return 0, err
	}

	banned, err := t.bans.IsBanned(creationData.Creator)
	if err != nil {
		return 0, err
	}
	if banned {
		return 0, internal_errors.Forbidden("アクセスが制限されています")
	}

	if policy.ContainsBannedTerm(creationData.Title, t.cfg.BannedWords) ||
		policy.ContainsBannedTerm(first.Content, t.cfg.BannedWords) {
		return 0, internal_errors.Validation("投稿に禁止ワードが含まれています")
	}

	lastCreated, err := t.storage.LastThreadTime(creationData.Creator)
	if err != nil {
		return 0, err
	}
	if !policy.WithinInterval(lastCreated, time.Now(), t.cfg.ThreadInterval()) {
		waitMinutes := (t.cfg.ThreadIntervalSeconds + 59) / 60
		return 0, internal_errors.RateLimited(fmt.Sprintf("連続スレッド作成はできません。%d分お待ちください", waitMinutes))
	}

	return t.storage.CreateThread(ctx, creationData)
}

func (t *Thread) Get(id domain.ThreadId) (domain.Thread, error) {
	return t.storage.GetThread(id)
}

func (t *Thread) List(boardId domain.BoardId) ([]domain.ThreadMetadata, error) {
	return t.storage.ListThreads(boardId)
}

// Search matches against thread titles and post contents. The result cap
// comes from config so a hostile keyword cannot pull the whole table.
func (t *Thread) Search(keyword string, boardId *domain.BoardId) ([]domain.ThreadMetadata, error) {
	if keyword == "" {
		return nil, internal_errors.Validation("検索キーワードは必須です")
	}
	return t.storage.SearchThreads(keyword, boardId, t.cfg.SearchResultLimit)
}
