package dispatcher

import (
	"log/slog"
	"net/http"

	"github.com/hajimekit/hajime/core/response"
	"github.com/hajimekit/hajime/core/router"
	"github.com/hajimekit/hajime/core/session"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for dispatch events.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSessionStore sets the session store. Defaults to an in-memory store.
func WithSessionStore(store session.Store) Option {
	return func(e *Engine) {
		if store != nil {
			e.sessions = store
		}
	}
}

// WithRouteTable sets the route table. Defaults to an empty table.
func WithRouteTable(table *router.Table) Option {
	return func(e *Engine) {
		if table != nil {
			e.routes = table
		}
	}
}

// WithNormalizer sets the response normalizer.
func WithNormalizer(n *response.Normalizer) Option {
	return func(e *Engine) {
		if n != nil {
			e.normalizer = n
		}
	}
}

// WithCookieOptions sets the attributes of the session cookie.
func WithCookieOptions(opts session.CookieOptions) Option {
	return func(e *Engine) {
		e.normalizer = response.NewNormalizer(opts)
	}
}

// WithStatic routes every path starting with prefix to h, bypassing sessions,
// middleware and the route table.
func WithStatic(prefix string, h http.Handler) Option {
	return func(e *Engine) {
		if prefix != "" && h != nil {
			e.staticPrefix = prefix
			e.static = h
		}
	}
}

// WithMaxBodyBytes caps how much of a request body is read.
func WithMaxBodyBytes(n int64) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxBody = n
		}
	}
}

// WithObserver registers an observer notified of every outcome.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observers = append(e.observers, o)
		}
	}
}
