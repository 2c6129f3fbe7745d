package modules

import (
	"net/http"

	handlers "github.com/oksasatya/go-bookmarks-api/internal/interface/http"
)

type HealthModule struct {
	Handler *handlers.HealthHandler
}

func NewHealthModule(h *handlers.HealthHandler) *HealthModule {
	return &HealthModule{Handler: h}
}

func (m *HealthModule) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/health", Handler: m.Handler.Health},
	}
}
