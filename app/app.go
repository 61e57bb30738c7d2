package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/hajimekit/hajime/core/admin"
	"github.com/hajimekit/hajime/core/config"
	"github.com/hajimekit/hajime/core/dispatcher"
	"github.com/hajimekit/hajime/core/handler"
	"github.com/hajimekit/hajime/core/health"
	"github.com/hajimekit/hajime/core/logger"
	"github.com/hajimekit/hajime/core/metrics"
	"github.com/hajimekit/hajime/core/server"
	"github.com/hajimekit/hajime/core/session"
	"github.com/hajimekit/hajime/core/socket"
	"github.com/hajimekit/hajime/core/static"
	"github.com/hajimekit/hajime/core/storage"
	"github.com/hajimekit/hajime/core/template"
	"github.com/hajimekit/hajime/integration/database/redis"
	"github.com/hajimekit/hajime/integration/storage/s3"
	"github.com/hajimekit/hajime/middleware"
)

type sessionStore interface {
	session.Store
	Healthcheck(ctx context.Context) error
}

// App composes the request dispatcher and the socket router into one
// application. The two listeners share no in-process state; anything both
// need goes through the database.
type App struct {
	cfg    Config
	cfgSet bool
	logger *slog.Logger

	sessions  sessionStore
	memStore  *session.MemoryStore
	redis     goredis.UniversalClient
	engine    *dispatcher.Engine
	static    *static.Handler
	sockets   *socket.Router
	templates *template.Engine
	assets    fs.FS
	db        *storage.DB
	ownsDB    bool
	registry  *prometheus.Registry

	httpServer   *server.Server
	socketServer *server.Server

	mu       sync.Mutex
	launched bool
}

// New builds an App. Configuration is loaded from the environment unless
// WithConfig is given, then validated before any component is created.
func New(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	if !a.cfgSet {
		if err := config.Load(&a.cfg); err != nil {
			return nil, err
		}
	}

	if err := validator.New().Struct(a.cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if a.logger == nil {
		a.logger = logger.NewFromConfig(a.cfg.Logger)
	}

	if err := a.build(); err != nil {
		a.closeResources()
		return nil, err
	}

	return a, nil
}

func (a *App) build() error {
	if err := a.buildSessions(); err != nil {
		return err
	}
	if err := a.buildAssets(); err != nil {
		return err
	}

	engineOpts := []dispatcher.Option{
		dispatcher.WithLogger(a.logger),
		dispatcher.WithSessionStore(a.sessions),
		dispatcher.WithCookieOptions(a.cfg.Session.Cookie()),
		dispatcher.WithStatic(a.static.Prefix(), a.static),
	}

	var collector *metrics.Collector
	if a.cfg.Metrics.Enabled {
		if a.registry == nil {
			a.registry = prometheus.NewRegistry()
		}
		col, err := metrics.NewFromConfig(a.cfg.Metrics, a.registry)
		if err != nil {
			return err
		}
		if a.memStore != nil {
			if err := col.WatchSessions(a.memStore); err != nil {
				return err
			}
		}
		collector = col
		engineOpts = append(engineOpts, dispatcher.WithObserver(collector))
	}

	a.engine = dispatcher.NewFromConfig(a.cfg.Dispatcher, engineOpts...)
	if collector != nil {
		a.engine.AddRoute(a.cfg.Metrics.Path, metrics.Handler(a.registry, a.logger))
	}

	a.sockets = socket.NewFromConfig(a.cfg.Socket, socket.WithLogger(a.logger))

	if a.db == nil && a.cfg.Storage.Enabled() {
		db, err := storage.Open(context.Background(), a.cfg.Storage, storage.WithLogger(a.logger))
		if err != nil {
			return err
		}
		a.db = db
		a.ownsDB = true
	}

	if a.cfg.AdminPath != "" {
		panel := admin.Handler(a.db, admin.WithLogger(a.logger))
		if a.cfg.AdminUser != "" {
			panel = middleware.BasicAuth("Admin", a.cfg.AdminUser, a.cfg.AdminPasswordHash, panel)
		}
		a.engine.AddRoute(a.cfg.AdminPath, panel)
	}

	if p := a.cfg.HealthPath; p != "" {
		checks := []health.Check{a.sessions.Healthcheck}
		if a.db != nil {
			checks = append(checks, a.db.Healthcheck)
		}
		a.engine.AddRoute(p+"/live", health.Liveness)
		a.engine.AddRoute(p+"/ready", health.Readiness(a.logger, checks...))
	}

	httpServer, err := server.NewFromConfig(a.cfg.Server,
		server.WithLogger(a.logger),
		server.WithName("http"),
	)
	if err != nil {
		return err
	}
	a.httpServer = httpServer

	if addr := a.cfg.Socket.Addr; addr != "" {
		if a.cfg.Server.AutoPort {
			if addr, err = server.FreeAddr(addr); err != nil {
				return err
			}
		}
		// Upgraded connections are long-lived, so no read or write deadline.
		a.socketServer = server.New(addr,
			server.WithLogger(a.logger),
			server.WithName("socket"),
			server.WithReadTimeout(0),
			server.WithWriteTimeout(0),
			server.WithShutdownTimeout(a.cfg.Server.ShutdownTimeout),
		)
	}

	return nil
}

func (a *App) buildSessions() error {
	if a.cfg.Session.Backend != session.BackendRedis {
		a.memStore = session.NewFromConfig(a.cfg.Session, session.WithLogger(a.logger))
		a.sessions = a.memStore
		return nil
	}

	if !a.cfg.Redis.Enabled() {
		return fmt.Errorf("%w: redis session backend requires REDIS_URL", ErrInvalidConfig)
	}

	client, err := redis.Connect(context.Background(), a.cfg.Redis)
	if err != nil {
		return err
	}
	a.redis = client
	a.sessions = session.NewRedisFromConfig(a.cfg.Session, client, session.WithRedisLogger(a.logger))
	return nil
}

// buildAssets creates the template engine and static handler, reading
// from the asset filesystem when one is configured.
func (a *App) buildAssets() error {
	if a.assets == nil && a.cfg.Assets.Enabled() {
		fsys, err := s3.New(context.Background(), a.cfg.Assets)
		if err != nil {
			return err
		}
		a.assets = fsys
	}

	templateOpts := []template.Option{template.WithLogger(a.logger)}
	staticOpts := []static.Option{static.WithLogger(a.logger)}

	if a.assets != nil {
		templates, err := fs.Sub(a.assets, a.cfg.TemplateDir)
		if err != nil {
			return fmt.Errorf("%w: template dir: %w", ErrInvalidConfig, err)
		}
		templateOpts = append(templateOpts, template.WithFS(templates))

		if dir := a.cfg.Static.Dir; dir != "" {
			files, err := fs.Sub(a.assets, dir)
			if err != nil {
				return fmt.Errorf("%w: static dir: %w", ErrInvalidConfig, err)
			}
			staticOpts = append(staticOpts, static.WithFS(files))
		}
	}

	a.templates = template.New(a.cfg.TemplateDir, templateOpts...)
	a.static = static.NewFromConfig(a.cfg.Static, staticOpts...)
	return nil
}

// AddRoute registers h for path. Methods default to GET.
func (a *App) AddRoute(path string, h handler.HandlerFunc, methods ...string) *App {
	a.engine.AddRoute(path, h, methods...)
	return a
}

// AddMiddleware appends request middleware run before every route handler.
func (a *App) AddMiddleware(mw ...handler.Middleware) *App {
	a.engine.AddMiddleware(mw...)
	return a
}

// SetErrorHandler customizes the body of 404 and 405 responses.
func (a *App) SetErrorHandler(status int, fn handler.ErrorHandlerFunc) *App {
	a.engine.SetErrorHandler(status, fn)
	return a
}

// AddMessageHandler registers a socket handler for path.
func (a *App) AddMessageHandler(path string, h socket.MessageHandler) *App {
	a.sockets.Handle(path, h)
	return a
}

// Template renders name from the template directory, or the not-found
// text when it cannot be read.
func (a *App) Template(name string, vars map[string]any) string {
	return a.templates.RenderOrFallback(name, vars)
}

// Config returns the validated configuration.
func (a *App) Config() Config { return a.cfg }

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger { return a.logger }

// DB returns the database, or nil when none is configured.
func (a *App) DB() *storage.DB { return a.db }

// Sessions returns the session store.
func (a *App) Sessions() session.Store { return a.sessions }

// Engine returns the request dispatcher.
func (a *App) Engine() *dispatcher.Engine { return a.engine }

// Sockets returns the socket router.
func (a *App) Sockets() *socket.Router { return a.sockets }

// Registry returns the metrics registry, or nil when metrics are disabled.
func (a *App) Registry() *prometheus.Registry { return a.registry }

// HTTPServer returns the server running the dispatcher.
func (a *App) HTTPServer() *server.Server { return a.httpServer }

// SocketServer returns the server running the socket router, or nil when disabled.
func (a *App) SocketServer() *server.Server { return a.socketServer }

// Handler returns the dispatcher wrapped with request id and access logging.
func (a *App) Handler() http.Handler {
	return middleware.Chain(a.engine,
		middleware.RequestID(),
		middleware.LoggingWithConfig(middleware.LoggingConfig{
			Logger:    a.logger,
			Component: "http",
		}),
	)
}

// Launch runs the HTTP server, the socket server and the session janitor
// until ctx is canceled or one of them fails. Connections opened by New are
// closed on return.
func (a *App) Launch(ctx context.Context) error {
	a.mu.Lock()
	if a.launched {
		a.mu.Unlock()
		return ErrAlreadyLaunch
	}
	a.launched = true
	a.mu.Unlock()

	defer a.closeResources()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(a.httpServer.Run(gctx, a.Handler()))

	if a.socketServer != nil {
		g.Go(a.socketServer.Run(gctx, a.sockets))
	}

	if a.memStore != nil && a.cfg.Session.CleanupInterval > 0 && a.cfg.Session.TTL > 0 {
		g.Go(a.memStore.Run(gctx))
	}

	a.logger.InfoContext(ctx, "hajime launched",
		logger.Key("http_addr", a.cfg.Server.Addr),
		logger.Key("socket_addr", a.cfg.Socket.Addr),
		logger.Count("routes", len(a.engine.Routes())),
		logger.Count("socket_routes", len(a.sockets.Paths())),
	)

	err := g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.ErrorContext(ctx, "hajime stopped with error", logger.Error(err))
		return err
	}

	a.logger.InfoContext(ctx, "hajime stopped")
	return nil
}

func (a *App) closeResources() {
	if a.ownsDB && a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error("database close failed", logger.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("redis close failed", logger.Error(err))
		}
	}
}
