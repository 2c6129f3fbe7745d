package router

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-bookmarks-api/internal/router/modules"
)

type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	guard   gin.HandlerFunc
	modules []Module
}

// NewRegistry mounts every module under basePath. guard is prepended to
// each protected route.
func NewRegistry(engine *gin.Engine, basePath string, guard gin.HandlerFunc) *Registry {
	return &Registry{Engine: engine, API: engine.Group(basePath), guard: guard}
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll installs every module's routes.
// A protected route without a guard is a wiring bug and panics at startup.
func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		for _, rt := range m.Routes() {
			r.API.Handle(rt.Method, rt.Path, r.chain(rt)...)
		}
	}
}

func (r *Registry) chain(rt modules.Route) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, 3)
	if rt.Protected {
		if r.guard == nil {
			panic(fmt.Sprintf("router: %s %s is protected but no guard is configured", rt.Method, rt.Path))
		}
		chain = append(chain, r.guard)
	}
	if rt.Bind != nil {
		chain = append(chain, rt.Bind)
	}
	return append(chain, rt.Handler)
}
