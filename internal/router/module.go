package router

import "github.com/oksasatya/go-bookmarks-api/internal/router/modules"

// Module describes a feature module that contributes routes to the registry
type Module interface {
	Routes() []modules.Route
}
