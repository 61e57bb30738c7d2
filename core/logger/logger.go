package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds environment-based logger configuration.
type Config struct {
	Service string `env:"APP_NAME" envDefault:"hajime"`
	Env     string `env:"APP_ENV" envDefault:"development"`
	Level   string `env:"LOG_LEVEL" envDefault:"info"`
	Format  string `env:"LOG_FORMAT" envDefault:""` // "json" or "text"; empty picks by Env
}

type options struct {
	level       slog.Leveler
	json        bool
	output      io.Writer
	attrs       []slog.Attr
	handlerOpts *slog.HandlerOptions
}

// Option configures a logger built by New.
type Option func(*options)

// WithLevel sets the minimum log level.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithJSONFormatter switches output to JSON lines.
func WithJSONFormatter() Option {
	return func(o *options) {
		o.json = true
	}
}

// WithTextFormatter switches output to logfmt-style text.
func WithTextFormatter() Option {
	return func(o *options) {
		o.json = false
	}
}

// WithOutput sets the destination writer. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithAttr attaches attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(o *options) {
		o.attrs = append(o.attrs, attrs...)
	}
}

// WithHandlerOptions overrides the slog handler options. Level set via
// WithLevel still wins when the supplied options leave Level nil.
func WithHandlerOptions(opts *slog.HandlerOptions) Option {
	return func(o *options) {
		o.handlerOpts = opts
	}
}

// WithDevelopment configures text output at debug level.
func WithDevelopment(service string) Option {
	return func(o *options) {
		o.json = false
		o.level = slog.LevelDebug
		o.attrs = append(o.attrs, slog.String("service", service), slog.String("env", "development"))
	}
}

// WithStaging configures JSON output at info level.
func WithStaging(service string) Option {
	return func(o *options) {
		o.json = true
		o.level = slog.LevelInfo
		o.attrs = append(o.attrs, slog.String("service", service), slog.String("env", "staging"))
	}
}

// WithProduction configures JSON output at info level.
func WithProduction(service string) Option {
	return func(o *options) {
		o.json = true
		o.level = slog.LevelInfo
		o.attrs = append(o.attrs, slog.String("service", service), slog.String("env", "production"))
	}
}

// New builds a *slog.Logger. Without options it writes text at info level to stdout.
func New(opts ...Option) *slog.Logger {
	o := &options{
		level:  slog.LevelInfo,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(o)
	}

	hopts := &slog.HandlerOptions{Level: o.level}
	if o.handlerOpts != nil {
		hopts = o.handlerOpts
		if hopts.Level == nil {
			hopts.Level = o.level
		}
	}

	var h slog.Handler
	if o.json {
		h = slog.NewJSONHandler(o.output, hopts)
	} else {
		h = slog.NewTextHandler(o.output, hopts)
	}
	if len(o.attrs) > 0 {
		h = h.WithAttrs(o.attrs)
	}
	return slog.New(h)
}

// NewFromConfig builds a logger from environment configuration.
// Additional options are applied after the config-derived ones.
func NewFromConfig(cfg Config, opts ...Option) *slog.Logger {
	var base []Option
	switch strings.ToLower(cfg.Env) {
	case "production", "prod":
		base = append(base, WithProduction(cfg.Service))
	case "staging", "stage":
		base = append(base, WithStaging(cfg.Service))
	default:
		base = append(base, WithDevelopment(cfg.Service))
	}

	if cfg.Level != "" {
		base = append(base, WithLevel(ParseLevel(cfg.Level)))
	}
	switch strings.ToLower(cfg.Format) {
	case "json":
		base = append(base, WithJSONFormatter())
	case "text":
		base = append(base, WithTextFormatter())
	}

	return New(append(base, opts...)...)
}

// ParseLevel maps a level name to slog.Level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
