package modules

import (
	"net/http"

	handlers "github.com/oksasatya/go-bookmarks-api/internal/interface/http"
	"github.com/oksasatya/go-bookmarks-api/internal/interface/middleware"
)

type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/users/me", Protected: true, Handler: m.Handler.Me},
		{Method: http.MethodPatch, Path: "/users", Protected: true, Bind: middleware.BindJSON[handlers.EditUserRequest](), Handler: m.Handler.Edit},
	}
}
