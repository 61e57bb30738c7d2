package metrics

// Config holds metrics configuration.
type Config struct {
	Enabled   bool   `env:"METRICS_ENABLED" envDefault:"false"`
	Path      string `env:"METRICS_PATH" envDefault:"/metrics" validate:"required_if=Enabled true,omitempty,startswith=/"`
	Namespace string `env:"METRICS_NAMESPACE" envDefault:"hajime"`
}

// DefaultConfig returns a Config with metrics disabled.
func DefaultConfig() Config {
	return Config{
		Path:      DefaultPath,
		Namespace: DefaultNamespace,
	}
}

// NewFromConfig registers a Collector on reg using cfg.Namespace.
func NewFromConfig(cfg Config, reg Registerer, opts ...Option) (*Collector, error) {
	if cfg.Namespace != "" {
		opts = append([]Option{WithNamespace(cfg.Namespace)}, opts...)
	}
	return New(reg, opts...)
}
