package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig
	Mongo   MongoConfig
}

type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://127.0.0.1:8000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=0s"`
}

type SessionConfig struct {
	Store  string        `env:"SESSION_STORE,  default=memory"`
	Cookie string        `env:"SESSION_COOKIE, default=examconsole_session"`
	TTL    time.Duration `env:"SESSION_TTL,    default=12h"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// MongoConfig backs the optional mutation audit trail.
type MongoConfig struct {
	AuditEnabled bool   `env:"AUDIT_ENABLED, default=false"`
	URI          string `env:"MONGO_URI,     default=mongodb://localhost:27017"`
	Database     string `env:"MONGO_DB,      default=exam_console"`
}

// IsProduction reports whether secure cookies and JSON logs are expected.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Store {
	case SessionStoreRedis, SessionStoreMemory:
	default:
		return fmt.Errorf("config: SESSION_STORE must be %q or %q, got %q", SessionStoreRedis, SessionStoreMemory, c.Session.Store)
	}
	if c.Backend.URL == "" {
		return fmt.Errorf("config: BACKEND_URL is required")
	}
	return nil
}
