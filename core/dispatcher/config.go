package dispatcher

// Config holds dispatcher configuration.
type Config struct {
	// MaxBodyBytes caps how much of the request body is read, whatever Content-Length claims.
	MaxBodyBytes int64 `env:"HTTP_MAX_BODY_BYTES" envDefault:"1048576" validate:"gte=0"`
}

// DefaultConfig returns the default dispatcher configuration.
func DefaultConfig() Config {
	return Config{MaxBodyBytes: DefaultMaxBodyBytes}
}

// NewFromConfig creates an Engine from configuration.
// Additional options override config values.
func NewFromConfig(cfg Config, opts ...Option) *Engine {
	configOpts := []Option{
		WithMaxBodyBytes(cfg.MaxBodyBytes),
	}
	return New(append(configOpts, opts...)...)
}
