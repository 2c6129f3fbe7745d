package modules

import (
	"net/http"

	handlers "github.com/oksasatya/go-bookmarks-api/internal/interface/http"
	"github.com/oksasatya/go-bookmarks-api/internal/interface/middleware"
)

// BookmarkModule routes are all protected.
type BookmarkModule struct {
	Handler *handlers.BookmarkHandler
}

func NewBookmarkModule(h *handlers.BookmarkHandler) *BookmarkModule {
	return &BookmarkModule{Handler: h}
}

func (m *BookmarkModule) Routes() []Route {
	return []Route{
		{Method: http.MethodPost, Path: "/bookmarks", Protected: true, Bind: middleware.BindJSON[handlers.CreateBookmarkRequest](), Handler: m.Handler.Create},
		{Method: http.MethodGet, Path: "/bookmarks", Protected: true, Handler: m.Handler.List},
		{Method: http.MethodGet, Path: "/bookmarks/:id", Protected: true, Handler: m.Handler.Get},
		{Method: http.MethodPatch, Path: "/bookmarks/:id", Protected: true, Bind: middleware.BindJSON[handlers.EditBookmarkRequest](), Handler: m.Handler.Edit},
		{Method: http.MethodDelete, Path: "/bookmarks/:id", Protected: true, Handler: m.Handler.Delete},
	}
}
