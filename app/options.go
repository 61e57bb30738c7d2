package app

import (
	"io/fs"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hajimekit/hajime/core/storage"
)

// Option configures an App.
type Option func(*App) error

// WithConfig uses cfg instead of loading configuration from the environment.
func WithConfig(cfg Config) Option {
	return func(a *App) error {
		a.cfg = cfg
		a.cfgSet = true
		return nil
	}
}

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) error {
		if l == nil {
			return ErrNilLogger
		}
		a.logger = l
		return nil
	}
}

// WithDB uses an already opened database instead of opening one from configuration.
func WithDB(db *storage.DB) Option {
	return func(a *App) error {
		if db == nil {
			return ErrNilDatabase
		}
		a.db = db
		return nil
	}
}

// WithRegistry registers metrics on reg instead of a fresh registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(a *App) error {
		if reg == nil {
			return ErrNilRegistry
		}
		a.registry = reg
		return nil
	}
}

// WithAssets reads templates and static files from fsys. TemplateDir and
// Static.Dir are resolved as subdirectories of fsys.
func WithAssets(fsys fs.FS) Option {
	return func(a *App) error {
		if fsys == nil {
			return ErrNilAssets
		}
		a.assets = fsys
		return nil
	}
}
