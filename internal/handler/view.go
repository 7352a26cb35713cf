package handler

import (
	"time"

	"github.com/ayame-bbs/ayame/internal/api"
	"github.com/ayame-bbs/ayame/internal/domain"
	"github.com/ayame-bbs/ayame/internal/render"
)

// deletedPlaceholder replaces the content of soft-deleted posts in views.
// The raw content stays in storage for audit.
const deletedPlaceholder = "削除されました"

func postView(p *domain.Post) api.PostView {
	view := api.PostView{
		Id:         p.Id,
		PostNumber: p.PostNumber,
		Name:       render.FormatName(p.Name),
		CreatedAt:  p.CreatedAt,
		IsDeleted:  p.IsDeleted,
	}
	if p.IsDeleted {
		view.Content = deletedPlaceholder
		view.DeletedReason = render.FormatTitle(p.DeletedReason)
		return view
	}
	view.Email = render.FormatTitle(p.Email)
	view.Content = render.FormatContent(p.Content)
	return view
}

func threadView(t domain.Thread) api.ThreadView {
	view := threadMetadataView(t.ThreadMetadata)
	view.Posts = make([]api.PostView, 0, len(t.Posts))
	for _, p := range t.Posts {
		view.Posts = append(view.Posts, postView(p))
	}
	return view
}

func threadMetadataView(m domain.ThreadMetadata) api.ThreadView {
	return api.ThreadView{
		Id:        m.Id,
		BoardId:   m.BoardId,
		BoardName: m.BoardName,
		Title:     render.FormatTitle(m.Title),
		PostCount: m.PostCount,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func threadListView(metas []domain.ThreadMetadata) []api.ThreadView {
	views := make([]api.ThreadView, 0, len(metas))
	for _, m := range metas {
		views = append(views, threadMetadataView(m))
	}
	return views
}

func banListView(bans []domain.Ban, now time.Time) []api.BanView {
	views := make([]api.BanView, 0, len(bans))
	for _, b := range bans {
		views = append(views, api.BanView{Ban: b, Active: b.Active(now)})
	}
	return views
}
