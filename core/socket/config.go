package socket

import "time"

// Config holds persistent-connection subsystem configuration.
type Config struct {
	// Addr is the listen address of the dedicated socket server.
	Addr             string        `env:"WS_ADDR" envDefault:":8765"`
	ReadBufferSize   int           `env:"WS_READ_BUFFER" envDefault:"1024"`
	WriteBufferSize  int           `env:"WS_WRITE_BUFFER" envDefault:"1024"`
	HandshakeTimeout time.Duration `env:"WS_HANDSHAKE_TIMEOUT" envDefault:"10s"`
	AllowAnyOrigin   bool          `env:"WS_ALLOW_ANY_ORIGIN" envDefault:"false"`
}

// DefaultConfig returns the default socket configuration.
func DefaultConfig() Config {
	return Config{
		Addr:             ":8765",
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		HandshakeTimeout: 10 * time.Second,
	}
}

// NewFromConfig creates a Router from configuration.
// Additional options override config values.
func NewFromConfig(cfg Config, opts ...Option) *Router {
	configOpts := []Option{
		WithReadBuffer(cfg.ReadBufferSize),
		WithWriteBuffer(cfg.WriteBufferSize),
		WithHandshakeTimeout(cfg.HandshakeTimeout),
	}
	if cfg.AllowAnyOrigin {
		configOpts = append(configOpts, WithAllowAnyOrigin())
	}
	return NewRouter(append(configOpts, opts...)...)
}
