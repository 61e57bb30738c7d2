package socket

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hajimekit/hajime/core/logger"
)

// NotFoundMessage is sent to connections opened on an unregistered path before closing them.
const NotFoundMessage = "404 Not Found"

// MessageHandler owns a connection until it returns. The connection is closed afterwards.
type MessageHandler func(ctx context.Context, conn *Conn) error

// Router upgrades HTTP requests to persistent connections and dispatches
// them to handlers by exact path.
type Router struct {
	mu     sync.RWMutex
	routes map[string]MessageHandler

	upgrader       websocket.Upgrader
	responseHeader http.Header
	logger         *slog.Logger

	onConnect    func(context.Context, *Conn) error
	onDisconnect func(context.Context, *Conn)
	onError      func(context.Context, error)
}

// Option configures a Router.
type Option func(*Router)

// WithReadBuffer sets the upgrader's read buffer size.
func WithReadBuffer(size int) Option {
	return func(r *Router) {
		r.upgrader.ReadBufferSize = size
	}
}

// WithWriteBuffer sets the upgrader's write buffer size.
func WithWriteBuffer(size int) Option {
	return func(r *Router) {
		r.upgrader.WriteBufferSize = size
	}
}

// WithHandshakeTimeout bounds the upgrade handshake.
func WithHandshakeTimeout(timeout time.Duration) Option {
	return func(r *Router) {
		r.upgrader.HandshakeTimeout = timeout
	}
}

// WithOriginCheck sets the function deciding whether a cross-origin upgrade is allowed.
func WithOriginCheck(fn func(r *http.Request) bool) Option {
	return func(r *Router) {
		r.upgrader.CheckOrigin = fn
	}
}

// WithAllowAnyOrigin disables the same-origin check.
func WithAllowAnyOrigin() Option {
	return func(r *Router) {
		r.upgrader.CheckOrigin = func(*http.Request) bool {
			return true
		}
	}
}

// WithSubprotocols sets the supported subprotocols in order of preference.
func WithSubprotocols(protocols ...string) Option {
	return func(r *Router) {
		r.upgrader.Subprotocols = protocols
	}
}

// WithUpgradeHeaders adds headers to the upgrade response.
func WithUpgradeHeaders(header http.Header) Option {
	return func(r *Router) {
		r.responseHeader = header
	}
}

// WithOnConnect runs fn before the handler. A non-nil error closes the connection.
func WithOnConnect(fn func(context.Context, *Conn) error) Option {
	return func(r *Router) {
		r.onConnect = fn
	}
}

// WithOnDisconnect runs fn after the connection is closed.
func WithOnDisconnect(fn func(context.Context, *Conn)) Option {
	return func(r *Router) {
		r.onDisconnect = fn
	}
}

// WithErrorHandler receives upgrade and handler errors.
func WithErrorHandler(fn func(context.Context, error)) Option {
	return func(r *Router) {
		r.onError = fn
	}
}

// WithLogger sets the logger for connection events.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRouter creates an empty message router.
func NewRouter(opts ...Option) *Router {
	r := &Router{
		routes: make(map[string]MessageHandler),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Handle registers h for path, replacing any earlier handler. Panics if h is nil.
func (r *Router) Handle(path string, h MessageHandler) *Router {
	if h == nil {
		panic(ErrNilHandler)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[path] = h
	return r
}

// Paths returns the registered paths in sorted order.
func (r *Router) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// ServeHTTP upgrades the request and runs the handler registered for its path.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	path := req.URL.Path

	ws, err := r.upgrader.Upgrade(w, req, r.responseHeader)
	if err != nil {
		// Upgrade has already written an HTTP error response.
		r.logger.DebugContext(ctx, "websocket upgrade failed", logger.Path(path), logger.Error(err))
		r.reportError(ctx, err)
		return
	}

	conn := newConn(ws, path)
	defer func() {
		_ = conn.Close()
		if r.onDisconnect != nil {
			r.onDisconnect(ctx, conn)
		}
	}()

	r.mu.RLock()
	h, ok := r.routes[path]
	r.mu.RUnlock()

	if !ok {
		r.logger.DebugContext(ctx, "no message handler for path", logger.Path(path))
		_ = conn.Send(NotFoundMessage)
		return
	}

	if r.onConnect != nil {
		if err := r.onConnect(ctx, conn); err != nil {
			r.reportError(ctx, err)
			return
		}
	}

	r.logger.DebugContext(ctx, "connection opened", logger.Path(path), logger.Addr(req.RemoteAddr))

	if err := h(ctx, conn); err != nil && !IsClosed(err) {
		r.logger.DebugContext(ctx, "message handler failed", logger.Path(path), logger.Error(err))
		r.reportError(ctx, err)
	}
}

func (r *Router) reportError(ctx context.Context, err error) {
	if r.onError != nil {
		r.onError(ctx, err)
	}
}

// Echo is a MessageHandler that writes every received message back until the peer disconnects.
func Echo(ctx context.Context, conn *Conn) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msgType, data, err := conn.Raw().ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				return err
			}
			return nil
		}
		if err := conn.write(msgType, data); err != nil {
			return err
		}
	}
}
