package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "bookmarks-api", cfg.AppName)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, 15*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.False(t, cfg.RedisEnabled)
	assert.Empty(t, cfg.CORSOrigins())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRATION", "5m")
	t.Setenv("JWT_REFRESH_EXPIRATION", "720h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.AccessTTL)
	assert.Equal(t, 720*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
	assert.Equal(t, "memory", cfg.StoreDriver)
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRATION", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"same secrets", func(c *Config) { c.JWTRefreshSecret = c.JWTAccessSecret }, "must differ"},
		{"missing secret", func(c *Config) { c.JWTAccessSecret = "" }, "are required"},
		{"zero ttl", func(c *Config) { c.AccessTTL = 0 }, "must be positive"},
		{"driver", func(c *Config) { c.StoreDriver = "mysql" }, "STORE_DRIVER"},
		{"hash algo", func(c *Config) { c.PasswordHashAlgo = "md5" }, "PASSWORD_HASH_ALGO"},
		{"dev secrets in production", func(c *Config) { c.Env = "production" }, "must be set when APP_ENV=production"},
		{"dev refresh secret in staging", func(c *Config) {
			c.Env = "staging"
			c.JWTAccessSecret = "a-real-secret"
		}, "must be set when APP_ENV=staging"},
		{"cache ttl", func(c *Config) {
			c.RedisEnabled = true
			c.BookmarkCacheTTL = 0
		}, "BOOKMARK_CACHE_TTL"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)
			tc.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "app", DBPassword: "p@ss", DBHost: "db", DBPort: "5432", DBName: "bookmarks", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss@db:5432/bookmarks?sslmode=disable", cfg.PostgresDSN())

	cfg.DatabaseURL = "postgres://override/db"
	assert.Equal(t, "postgres://override/db", cfg.PostgresDSN())
}

func TestLoadProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("JWT_ACCESS_SECRET", "prod-access")
	t.Setenv("JWT_REFRESH_SECRET", "prod-refresh")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.IsDevelopment())
}
