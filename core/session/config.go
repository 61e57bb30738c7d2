package session

import (
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds session store configuration.
type Config struct {
	// TTL is the idle timeout. Sessions untouched for longer are evicted (0 = never).
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h" validate:"gte=0"`
	// Capacity bounds the number of live sessions; the least recently used is evicted first (0 = unbounded).
	Capacity int `env:"SESSION_CAPACITY" envDefault:"10000" validate:"gte=0"`
	// CleanupInterval is how often the janitor sweeps expired sessions.
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
	// Backend selects where sessions live: "memory" or "redis".
	Backend string `env:"SESSION_BACKEND" envDefault:"memory" validate:"oneof=memory redis"`
	// RedisPrefix namespaces keys when Backend is "redis".
	RedisPrefix string `env:"SESSION_REDIS_PREFIX" envDefault:"hajime:session:"`

	CookiePath     string        `env:"SESSION_COOKIE_PATH" envDefault:"/"`
	CookieDomain   string        `env:"SESSION_COOKIE_DOMAIN" envDefault:""`
	CookieSecure   bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	CookieHTTPOnly bool          `env:"SESSION_COOKIE_HTTP_ONLY" envDefault:"true"`
	CookieSameSite http.SameSite `env:"SESSION_COOKIE_SAME_SITE" envDefault:"2"` // SameSiteLaxMode
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		TTL:             24 * time.Hour,
		Capacity:        10000,
		CleanupInterval: 5 * time.Minute,
		Backend:         BackendMemory,
		RedisPrefix:     DefaultRedisPrefix,
		CookiePath:      "/",
		CookieHTTPOnly:  true,
		CookieSameSite:  http.SameSiteLaxMode,
	}
}

// Cookie returns the cookie options described by the config.
func (c Config) Cookie() CookieOptions {
	return CookieOptions{
		Path:     c.CookiePath,
		Domain:   c.CookieDomain,
		Secure:   c.CookieSecure,
		HTTPOnly: c.CookieHTTPOnly,
		SameSite: c.CookieSameSite,
	}
}

// NewFromConfig creates a MemoryStore from configuration.
// Additional options override config values.
func NewFromConfig(cfg Config, opts ...Option) *MemoryStore {
	configOpts := []Option{
		WithTTL(cfg.TTL),
		WithCapacity(cfg.Capacity),
		WithCleanupInterval(cfg.CleanupInterval),
	}
	return NewMemoryStore(append(configOpts, opts...)...)
}

// NewRedisFromConfig creates a RedisStore over client from configuration.
// Additional options override config values.
func NewRedisFromConfig(cfg Config, client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	configOpts := []RedisOption{
		WithRedisTTL(cfg.TTL),
		WithRedisPrefix(cfg.RedisPrefix),
	}
	return NewRedisStore(client, append(configOpts, opts...)...)
}
