package modules

import (
	"net/http"

	handlers "github.com/oksasatya/go-bookmarks-api/internal/interface/http"
	"github.com/oksasatya/go-bookmarks-api/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

// Routes are public: POST /auth/signup, /auth/signin, /auth/refresh.
func (m *AuthModule) Routes() []Route {
	return []Route{
		{Method: http.MethodPost, Path: "/auth/signup", Bind: middleware.BindJSON[handlers.SignUpRequest](), Handler: m.Handler.SignUp},
		{Method: http.MethodPost, Path: "/auth/signin", Bind: middleware.BindJSON[handlers.SignInRequest](), Handler: m.Handler.SignIn},
		{Method: http.MethodPost, Path: "/auth/refresh", Bind: middleware.BindJSON[handlers.RefreshRequest](), Handler: m.Handler.Refresh},
	}
}
