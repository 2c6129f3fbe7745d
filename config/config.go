package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"bookmarks-api"`
	Env     string `env:"APP_ENV" envDefault:"development"` // development, staging, production
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"release"`

	// Store: postgres or memory
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`

	// Database. DatabaseURL wins over the individual parts when set.
	DatabaseURL   string        `env:"DATABASE_URL"`
	DBHost        string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string        `env:"DB_PORT" envDefault:"5432"`
	DBUser        string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword    string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName        string        `env:"DB_NAME" envDefault:"bookmarks"`
	DBSSLMode     string        `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxConns    int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns    int32         `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnLife time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`

	// Redis (bookmark list cache)
	RedisEnabled     bool          `env:"REDIS_ENABLED" envDefault:"false"`
	RedisAddr        string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword    string        `env:"REDIS_PASSWORD"`
	RedisDB          int           `env:"REDIS_DB" envDefault:"0"`
	BookmarkCacheTTL time.Duration `env:"BOOKMARK_CACHE_TTL" envDefault:"5m"`

	// JWT
	JWTAccessSecret  string        `env:"JWT_ACCESS_SECRET" envDefault:"devaccesssecret"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET" envDefault:"devrefreshsecret"`
	AccessTTL        time.Duration `env:"JWT_ACCESS_EXPIRATION" envDefault:"15m"`
	RefreshTTL       time.Duration `env:"JWT_REFRESH_EXPIRATION" envDefault:"168h"`

	// Password hashing: argon2id or bcrypt
	PasswordHashAlgo string `env:"PASSWORD_HASH_ALGO" envDefault:"argon2id"`

	// CORS; empty means any origin, without credentials
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// Migrations
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"db/migrations"`
	AutoMigrate   bool   `env:"AUTO_MIGRATE" envDefault:"true"`

	// Tracing; empty endpoint disables the exporter
	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// Debug metrics (/api/v1/debug/vars)
	DebugMetricsEnabled bool `env:"DEBUG_METRICS_ENABLED" envDefault:"true"`

	// HTTP access log toggle
	HTTPLogEnabled bool `env:"HTTP_LOG_ENABLED" envDefault:"false"`
}

// Development-only JWT secrets; Validate refuses them outside development.
const (
	devAccessSecret  = "devaccesssecret"
	devRefreshSecret = "devrefreshsecret"
)

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTAccessSecret == "" || c.JWTRefreshSecret == "" {
		errs = append(errs, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required"))
	} else if c.JWTAccessSecret == c.JWTRefreshSecret {
		errs = append(errs, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ"))
	}
	if !c.IsDevelopment() && (c.JWTAccessSecret == devAccessSecret || c.JWTRefreshSecret == devRefreshSecret) {
		errs = append(errs, fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set when APP_ENV=%s", c.Env))
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_EXPIRATION and JWT_REFRESH_EXPIRATION must be positive"))
	}
	if c.RedisEnabled && c.BookmarkCacheTTL <= 0 {
		errs = append(errs, errors.New("BOOKMARK_CACHE_TTL must be positive"))
	}
	switch c.StoreDriver {
	case "postgres", "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}
	switch c.PasswordHashAlgo {
	case "argon2id", "bcrypt":
	default:
		errs = append(errs, fmt.Errorf("unknown PASSWORD_HASH_ALGO %q", c.PasswordHashAlgo))
	}
	return errors.Join(errs...)
}

// PostgresDSN returns a DSN compatible with pgx
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.DBSSLMode,
	}
	return u.String()
}

// CORSOrigins returns the allowed origins without blanks
func (c *Config) CORSOrigins() []string {
	res := make([]string, 0, len(c.CORSAllowedOrigins))
	for _, p := range c.CORSAllowedOrigins {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}

func (c *Config) IsDevelopment() bool { return c.Env == "development" }
