package app

import (
	"github.com/hajimekit/hajime/core/dispatcher"
	"github.com/hajimekit/hajime/core/logger"
	"github.com/hajimekit/hajime/core/metrics"
	"github.com/hajimekit/hajime/core/server"
	"github.com/hajimekit/hajime/core/session"
	"github.com/hajimekit/hajime/core/socket"
	"github.com/hajimekit/hajime/core/static"
	"github.com/hajimekit/hajime/core/storage"
	"github.com/hajimekit/hajime/integration/database/redis"
	"github.com/hajimekit/hajime/integration/storage/s3"
)

// Config aggregates the configuration of every component the App builds.
type Config struct {
	Logger     logger.Config
	Server     server.Config
	Session    session.Config
	Dispatcher dispatcher.Config
	Static     static.Config
	Socket     socket.Config
	Storage    storage.Config
	Metrics    metrics.Config
	Redis      redis.Config
	// Assets serves static files and templates from a bucket instead of
	// local directories when S3_BUCKET is set. Static.Dir and TemplateDir
	// become key prefixes inside the bucket.
	Assets s3.Config

	TemplateDir string `env:"TEMPLATE_DIR" envDefault:"templates" validate:"required"`
	// AdminPath mounts the database admin panel. Empty disables it.
	AdminPath string `env:"ADMIN_PATH" envDefault:"/admin" validate:"omitempty,startswith=/"`
	// AdminUser enables basic auth on the admin panel.
	AdminUser string `env:"ADMIN_USER"`
	// AdminPasswordHash is the bcrypt hash of the admin password.
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH" validate:"required_with=AdminUser"`
	// HealthPath mounts HealthPath+"/live" and HealthPath+"/ready". Empty disables them.
	HealthPath string `env:"HEALTH_PATH" envDefault:"/health" validate:"omitempty,startswith=/"`
}

// DefaultConfig returns the configuration used when nothing is set in the environment.
func DefaultConfig() Config {
	return Config{
		Logger:      logger.Config{Service: "hajime", Env: "development", Level: "info"},
		Server:      server.DefaultConfig(),
		Session:     session.DefaultConfig(),
		Dispatcher:  dispatcher.DefaultConfig(),
		Static:      static.DefaultConfig(),
		Socket:      socket.DefaultConfig(),
		Metrics:     metrics.DefaultConfig(),
		Assets:      s3.Config{Region: "us-east-1"},
		TemplateDir: "templates",
		AdminPath:   "/admin",
		HealthPath:  "/health",
	}
}
