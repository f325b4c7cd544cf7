package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	APIPrefix string `env:"API_PREFIX, default=/api/v1"`

	Auth      AuthConfig
	Storage   StorageConfig
	Mongo     MongoConfig
	SQL       SQLConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET"`
	TokenTTL       time.Duration `env:"JWT_TTL,         default=24h"`
	PasswordHasher string        `env:"PASSWORD_HASHER, default=bcrypt"`
	BcryptCost     int           `env:"BCRYPT_COST,     default=10"`
}

type StorageConfig struct {
	Driver string `env:"STORAGE_DRIVER, default=mongo"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=task_crm"`
}

type SQLConfig struct {
	DSN string `env:"DATABASE_URL, default=file:taskcrm.db?cache=shared"`
}

type RedisConfig struct {
	Enabled bool   `env:"REDIS_ENABLED, default=true"`
	Addr    string `env:"REDIS_ADDR,    default=localhost:6379"`
	DB      int    `env:"REDIS_DB,      default=0"`
}

// RateLimitConfig controls the per-email login token bucket. A rate of zero
// disables throttling.
type RateLimitConfig struct {
	LoginRatePerSec float64 `env:"LOGIN_RATE_PER_SEC, default=0.2"`
	LoginBurst      float64 `env:"LOGIN_BURST,        default=5"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL,  default=info"`
	Pretty bool   `env:"LOG_PRETTY, default=false"`
}

// Load reads a .env file when one is present and then resolves configuration
// from the environment. Variables already set in the environment win over
// the file.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom resolves configuration from an arbitrary lookuper.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required")
	}

	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverMongo, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of mongo, postgres, sqlite (got %q)", c.Storage.Driver)
	}

	switch strings.ToLower(c.Auth.PasswordHasher) {
	case "bcrypt", "argon2id":
	default:
		return fmt.Errorf("PASSWORD_HASHER must be bcrypt or argon2id (got %q)", c.Auth.PasswordHasher)
	}

	if !strings.HasPrefix(c.APIPrefix, "/") {
		c.APIPrefix = "/" + c.APIPrefix
	}
	c.APIPrefix = strings.TrimRight(c.APIPrefix, "/")
	return nil
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
