package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// EnvProduction is the APP_ENV value that switches off development conveniences.
const EnvProduction = "production"

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env            string   `env:"APP_ENV, default=development"`
	Port           string   `env:"PORT, default=8080"`
	LogLevel       string   `env:"LOG_LEVEL, default=info"`
	SwaggerHost    string   `env:"SWAGGER_HOST"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS, default=http://localhost:5173,http://localhost:5179"`

	JWT      JWTConfig
	Database DatabaseConfig
	Redis    RedisConfig
}

// JWTConfig configures the token service.
type JWTConfig struct {
	Secret    string   `env:"JWT_SECRET, default=dev-secret"`
	ExpiresIn Lifetime `env:"JWT_EXPIRES_IN, default=7d"`
}

// DatabaseConfig selects and configures the relational store.
type DatabaseConfig struct {
	Driver         string        `env:"DB_DRIVER, default=sqlite"`
	DSN            string        `env:"DB_DSN"`
	Host           string        `env:"DB_HOST, default=127.0.0.1"`
	Port           string        `env:"DB_PORT, default=3306"`
	User           string        `env:"DB_USER, default=root"`
	Password       string        `env:"DB_PASS"`
	Name           string        `env:"DB_NAME, default=hospital_system"`
	SQLitePath     string        `env:"SQLITE_PATH, default=data/database.sqlite"`
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT, default=60s"`
	Reset          bool          `env:"RESET_DB, default=false"`
}

// RedisConfig configures the cache connection.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// Load builds Config from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom builds Config from an arbitrary lookuper. Tests use envconfig.MapLookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// Lifetime is a duration that also accepts a day suffix ("7d") and bare
// seconds ("3600"), the formats token lifetimes are usually written in.
type Lifetime time.Duration

// Duration returns the lifetime as a time.Duration.
func (l Lifetime) Duration() time.Duration {
	return time.Duration(l)
}

// EnvDecode implements envconfig.Decoder.
func (l *Lifetime) EnvDecode(val string) error {
	d, err := ParseLifetime(val)
	if err != nil {
		return err
	}
	*l = Lifetime(d)
	return nil
}

// ParseLifetime parses "7d", "36h", "90m" or "3600".
func ParseLifetime(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty lifetime")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("lifetime must be positive: %q", s)
		}
		return time.Duration(n) * time.Second, nil
	}
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil || days <= 0 {
			return 0, fmt.Errorf("invalid lifetime %q", s)
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid lifetime %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("lifetime must be positive: %q", s)
	}
	return d, nil
}
