package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/MisterMaks/rdrt-client/internal/app"
	"github.com/MisterMaks/rdrt-client/internal/logger"
	"go.uber.org/zap"
)

// LoadLinks loads page of the user's links.
func (au *AppUsecase) LoadLinks(ctx context.Context, page int) error {
	ctxLogger := logger.GetContextLogger(ctx)

	if page < 1 {
		page = 1
	}

	var loggedIn bool
	au.update(func(s *State) {
		loggedIn = s.LoggedIn
		if !loggedIn {
			return
		}
		s.Links.Loading = true
		s.Links.Error = ""
	})
	if !loggedIn {
		return ErrNotLoggedIn
	}

	list, err := au.Shortener.MyURLs(ctx, page, au.PageSize)
	if err != nil {
		ctxLogger.Warn("Failed to load links", zap.Int(PageKey, page), zap.Error(err))
		au.update(func(s *State) {
			s.Links.Loading = false
			s.Links.Error = Message(err, LinksFailedMessage)
		})
		return err
	}

	au.update(func(s *State) {
		if !s.LoggedIn {
			return
		}
		pageSize := list.PageSize
		if pageSize <= 0 {
			pageSize = au.PageSize
		}
		current := list.Page
		if current < 1 {
			current = page
		}
		s.Links = LinksState{
			Items:    list.Items,
			Page:     current,
			PageSize: pageSize,
			Total:    list.Total,
		}
	})
	return nil
}

// NextPage loads next page. It is no-op on the last page.
func (au *AppUsecase) NextPage(ctx context.Context) error {
	links := au.State().Links
	if !links.HasNext() {
		return nil
	}
	return au.LoadLinks(ctx, links.Page+1)
}

// PrevPage loads previous page. It is no-op on the first page.
func (au *AppUsecase) PrevPage(ctx context.Context) error {
	links := au.State().Links
	if !links.HasPrev() {
		return nil
	}
	return au.LoadLinks(ctx, links.Page-1)
}

// LoadStats loads stats of the link with code.
func (au *AppUsecase) LoadStats(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		au.update(func(s *State) {
			s.StatsError = Message(ErrEmptyCode, "")
		})
		return ErrEmptyCode
	}

	au.update(func(s *State) {
		s.StatsLoading = true
		s.StatsError = ""
	})

	stats, err := au.Shortener.Stats(ctx, code)
	if err != nil {
		logger.GetContextLogger(ctx).Warn("Failed to load stats", zap.String(CodeKey, code), zap.Error(err))
		au.update(func(s *State) {
			s.StatsLoading = false
			s.StatsError = Message(err, StatsFailedMessage)
		})
		return err
	}

	au.update(func(s *State) {
		s.StatsLoading = false
		s.Stats = stats
	})
	return nil
}

// replaceLink returns copy of items with the link code replaced by link.
func replaceLink(items []app.LinkSummary, code string, link app.LinkSummary) ([]app.LinkSummary, bool) {
	for i := range items {
		if items[i].Code != code {
			continue
		}
		updated := make([]app.LinkSummary, len(items))
		copy(updated, items)
		updated[i] = link
		return updated, true
	}
	return items, false
}

func findLink(items []app.LinkSummary, code string) (app.LinkSummary, bool) {
	for _, item := range items {
		if item.Code == code {
			return item, true
		}
	}
	return app.LinkSummary{}, false
}

// ToggleActive flips is_active of the link on the current page.
// The page is updated before the request and reverted on failure.
func (au *AppUsecase) ToggleActive(ctx context.Context, code string) error {
	var original app.LinkSummary
	var found bool
	var active bool
	au.update(func(s *State) {
		original, found = findLink(s.Links.Items, code)
		if !found {
			return
		}
		active = original.IsActive == nil || *original.IsActive
		active = !active

		flipped := original
		flipped.IsActive = &active
		s.Links.Items, _ = replaceLink(s.Links.Items, code, flipped)
	})
	if !found {
		return ErrLinkNotFound
	}

	link, err := au.Shortener.UpdateLink(ctx, code, app.LinkPatch{IsActive: &active})
	if err != nil {
		logger.GetContextLogger(ctx).Warn("Failed to toggle link", zap.String(CodeKey, code), zap.Error(err))
		au.update(func(s *State) {
			s.Links.Items, _ = replaceLink(s.Links.Items, code, original)
			au.toastLocked(s, Message(err, UpdateFailedMessage))
		})
		return err
	}

	au.update(func(s *State) {
		s.Links.Items, _ = replaceLink(s.Links.Items, code, *link)
	})
	return nil
}

// SetExpiry sets expires_at of the link. Nil expiresAt removes expiry.
func (au *AppUsecase) SetExpiry(ctx context.Context, code string, expiresAt *time.Time) error {
	if _, found := findLink(au.State().Links.Items, code); !found {
		return ErrLinkNotFound
	}

	patch := app.LinkPatch{ExpiresAt: expiresAt, ClearExpiresAt: expiresAt == nil}
	link, err := au.Shortener.UpdateLink(ctx, code, patch)
	if err != nil {
		logger.GetContextLogger(ctx).Warn("Failed to set link expiry", zap.String(CodeKey, code), zap.Error(err))
		au.Toast(Message(err, UpdateFailedMessage))
		return err
	}

	au.update(func(s *State) {
		s.Links.Items, _ = replaceLink(s.Links.Items, code, *link)
	})
	return nil
}
