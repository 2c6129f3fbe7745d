package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-bookmarks-api/config"
	"github.com/oksasatya/go-bookmarks-api/internal/container"
	handlers "github.com/oksasatya/go-bookmarks-api/internal/interface/http"
	"github.com/oksasatya/go-bookmarks-api/internal/interface/middleware"
	"github.com/oksasatya/go-bookmarks-api/internal/router/modules"
	"github.com/oksasatya/go-bookmarks-api/pkg/validation"
)

const BasePath = "/api/v1"

// New builds the engine, registers every module and returns it ready to serve.
func New(c *container.Container) *gin.Engine {
	engine := NewEngine(c)
	reg := NewRegistry(engine, BasePath, middleware.Auth(c.Auth, c.Logger))
	InitModules(reg, c)
	reg.RegisterAll()
	return engine
}

// NewEngine returns a gin engine with the global middleware stack.
func NewEngine(c *container.Container) *gin.Engine {
	cfg := c.Config
	validation.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(middleware.Tracing(cfg.AppName))
	if cfg.DebugMetricsEnabled {
		r.Use(middleware.Metrics())
	}
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(c.Logger))
	}
	r.Use(cors.New(corsConfig(cfg)))
	return r
}

func corsConfig(cfg *config.Config) cors.Config {
	cc := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if origins := cfg.CORSOrigins(); len(origins) > 0 {
		cc.AllowOrigins = origins
		cc.AllowCredentials = true
	} else {
		cc.AllowAllOrigins = true
	}
	return cc
}

// InitModules builds the handlers from the container and adds their modules
// to the registry. Call once during startup.
func InitModules(r *Registry, c *container.Container) {
	checks := make(map[string]handlers.HealthCheck, len(c.HealthChecks))
	for name, fn := range c.HealthChecks {
		checks[name] = fn
	}

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(c.Auth, c.Logger)))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(c.UserSvc, c.Logger)))
	r.Add(modules.NewBookmarkModule(handlers.NewBookmarkHandler(c.BookmarkSvc, c.Logger)))
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(checks, c.Logger)))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
