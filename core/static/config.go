package static

// Config holds static asset configuration.
type Config struct {
	// Prefix is the URL path prefix reserved for static assets.
	Prefix string `env:"STATIC_PREFIX" envDefault:"/static/" validate:"required,startswith=/"`
	// Dir is the directory files are served from.
	Dir string `env:"STATIC_DIR" envDefault:"static"`
}

// DefaultConfig returns the default static configuration.
func DefaultConfig() Config {
	return Config{
		Prefix: DefaultPrefix,
		Dir:    "static",
	}
}

// NewFromConfig creates a Handler from configuration.
// Additional options override config values.
func NewFromConfig(cfg Config, opts ...Option) *Handler {
	configOpts := []Option{WithPrefix(cfg.Prefix)}
	return New(cfg.Dir, append(configOpts, opts...)...)
}
