package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is constructed once at process start and injected into every
// component that needs it; nothing reads ambient environment state later.
type Config struct {
	Port          string        `env:"PORT,           default=8080"`
	Env           string        `env:"ENV,            default=development"`
	SessionSecret string        `env:"SESSION_SECRET, required"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=24h"`
	BcryptCost    int           `env:"BCRYPT_COST,    default=10"`
	LogLevel      string        `env:"LOG_LEVEL,      default=info"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, required"`
	Database string `env:"MONGO_DB,  default=auth_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
// MONGO_URI and SESSION_SECRET are required: the process refuses to start
// without them.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether the deployment is production-like; the
// session cookie carries the Secure flag only then.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
