// Package container builds the application's collaborators from config.
// Everything is passed explicitly; nothing is kept in package globals.
package container

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-bookmarks-api/config"
	"github.com/oksasatya/go-bookmarks-api/internal/application"
	repo "github.com/oksasatya/go-bookmarks-api/internal/domain/repository"
	"github.com/oksasatya/go-bookmarks-api/internal/infrastructure/cache"
	"github.com/oksasatya/go-bookmarks-api/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-bookmarks-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-bookmarks-api/pkg/helpers"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Users     repo.UserRepository
	Bookmarks repo.BookmarkRepository
	Cache     *cache.BookmarkCache // nil when REDIS_ENABLED=false
	JWT       *helpers.JWTManager
	Hasher    helpers.PasswordHasher

	Auth         *application.AuthService
	UserSvc      *application.UserService
	BookmarkSvc  *application.BookmarkService
	HealthChecks map[string]func(context.Context) error

	closers []func()
}

// New opens the configured store and cache and builds the services.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	hasher, err := helpers.NewPasswordHasher(cfg.PasswordHashAlgo)
	if err != nil {
		return nil, err
	}
	c := &Container{
		Config:       cfg,
		Logger:       logger,
		Hasher:       hasher,
		JWT:          helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL),
		HealthChecks: map[string]func(context.Context) error{},
	}

	switch cfg.StoreDriver {
	case "memory":
		store := memory.NewStore()
		c.Users, c.Bookmarks = store.Users(), store.Bookmarks()
		c.HealthChecks["database"] = store.Ping
		logger.Warn("using in-memory store; data is lost on restart")
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.closers = append(c.closers, pool.Close)
		c.Users = pginfra.NewUserRepository(pool)
		c.Bookmarks = pginfra.NewBookmarkRepository(pool)
		c.HealthChecks["database"] = pool.Ping
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if cfg.RedisEnabled {
		rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.useRedis(rdb)
	}

	c.build()
	return c, nil
}

func (c *Container) useRedis(rdb *redis.Client) {
	c.closers = append(c.closers, func() { _ = rdb.Close() })
	c.Cache = cache.NewBookmarkCache(rdb, c.Config.BookmarkCacheTTL)
	c.HealthChecks["cache"] = c.Cache.Ping
}

func (c *Container) build() {
	// keep a nil *BookmarkCache out of the interface
	var bc application.BookmarkCache
	if c.Cache != nil {
		bc = c.Cache
	}
	c.Auth = application.NewAuthService(c.Users, c.JWT, c.Hasher, c.Logger)
	c.UserSvc = application.NewUserService(c.Users, c.Logger)
	c.BookmarkSvc = application.NewBookmarkService(c.Bookmarks, bc, c.Logger)
}

// Close releases the store and cache connections in reverse order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
