package dispatcher

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/hajimekit/hajime/core/handler"
	"github.com/hajimekit/hajime/core/logger"
	"github.com/hajimekit/hajime/core/response"
	"github.com/hajimekit/hajime/core/router"
	"github.com/hajimekit/hajime/core/session"
)

// DefaultMaxBodyBytes is the default cap on request body bytes read.
const DefaultMaxBodyBytes int64 = 1 << 20

// Default bodies for error responses without a registered error handler.
const (
	BodyNotFound            = "404 Not Found"
	BodyMethodNotAllowed    = "405 Method Not Allowed"
	BodyInternalServerError = "500 Internal Server Error"
)

// Engine resolves each inbound request to exactly one response.
// Configure it at startup with AddRoute, AddMiddleware and SetErrorHandler.
type Engine struct {
	routes     *router.Table
	sessions   session.Store
	normalizer *response.Normalizer

	mu            sync.RWMutex
	middlewares   []handler.Middleware
	errorHandlers map[int]handler.ErrorHandlerFunc

	static       http.Handler
	staticPrefix string
	maxBody      int64
	logger       *slog.Logger
	observers    []Observer
}

// New creates a dispatch engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		routes:        router.NewTable(),
		normalizer:    response.NewNormalizer(session.DefaultCookieOptions()),
		errorHandlers: make(map[int]handler.ErrorHandlerFunc),
		maxBody:       DefaultMaxBodyBytes,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)), // No-op logger by default
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.sessions == nil {
		e.sessions = session.NewMemoryStore(session.WithLogger(e.logger))
	}

	return e
}

// AddRoute registers h for path. With no methods the route answers GET only.
// Registering the same path again replaces the route.
func (e *Engine) AddRoute(path string, h handler.HandlerFunc, methods ...string) *Engine {
	e.routes.Register(path, h, methods...)
	return e
}

// AddMiddleware appends middleware to the chain. They run in registration order.
func (e *Engine) AddMiddleware(mw ...handler.Middleware) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, m := range mw {
		if m != nil {
			e.middlewares = append(e.middlewares, m)
		}
	}
	return e
}

// SetErrorHandler registers the body renderer for an error status.
// Only 404 and 405 are consulted during dispatch.
func (e *Engine) SetErrorHandler(status int, fn handler.ErrorHandlerFunc) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	if fn == nil {
		delete(e.errorHandlers, status)
	} else {
		e.errorHandlers[status] = fn
	}
	return e
}

// Routes returns the registered routes sorted by path.
func (e *Engine) Routes() []router.Route {
	return e.routes.Routes()
}

// Sessions returns the session store in use.
func (e *Engine) Sessions() session.Store {
	return e.sessions
}

// ServeHTTP implements http.Handler.
func (e *Engine) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.Dispatch(w, r)
}

// Dispatch handles one request and reports the terminal state it reached.
func (e *Engine) Dispatch(w http.ResponseWriter, r *http.Request) (outcome Outcome) {
	start := time.Now()
	ww := newResponseWriter(w)
	path := r.URL.Path

	defer func() {
		if p := recover(); p != nil {
			outcome = e.recoverPanic(ww, r, &PanicError{value: p, stack: debug.Stack()})
		}
		e.observe(r.Context(), r, outcome, ww.Status(), start)
	}()

	if e.static != nil && strings.HasPrefix(path, e.staticPrefix) {
		e.static.ServeHTTP(ww, r)
		return OutcomeStatic
	}

	query, _ := url.ParseQuery(r.URL.RawQuery)
	body := e.readBody(r)

	id, bag := e.sessions.Resolve(r.Context(), strings.Join(r.Header.Values("Cookie"), "; "))
	ctx := handler.NewContext(ww, r, query, body)
	ctx.BindSession(id, bag)
	version := bag.Version()

	e.mu.RLock()
	middlewares := e.middlewares
	e.mu.RUnlock()

	for _, mw := range middlewares {
		err := mw(ctx, query)
		if err == nil {
			continue
		}
		msg := handler.RejectionMessage(err)
		if msg == "" {
			continue
		}
		e.logger.DebugContext(ctx, "request rejected by middleware",
			logger.Path(path),
			logger.Error(err))
		e.write(ww, r, response.HTML(http.StatusUnauthorized, msg))
		return OutcomeUnauthorized
	}

	route, err := e.routes.Resolve(path)
	if err != nil {
		e.write(ww, r, e.errorResponse(ctx, http.StatusNotFound, BodyNotFound))
		return OutcomeNotFound
	}

	if !route.Allows(r.Method) {
		resp := e.errorResponse(ctx, http.StatusMethodNotAllowed, BodyMethodNotAllowed)
		resp.Headers = append(resp.Headers, handler.Header{Name: "Allow", Value: strings.Join(route.Methods, ", ")})
		e.write(ww, r, resp)
		return OutcomeMethodNotAllowed
	}

	result := route.Handler(ctx)

	// A handler may swap the bag for a new one instead of mutating it.
	if current := ctx.Session(); current != bag || (current != nil && current.Version() != version) {
		e.sessions.Persist(r.Context(), id, current)
	}

	resp, err := e.normalizer.Normalize(result, id)
	if err != nil {
		e.logger.ErrorContext(ctx, "handler result could not be normalized",
			logger.Method(r.Method),
			logger.Path(path),
			logger.Error(err))
		e.write(ww, r, response.HTML(http.StatusInternalServerError, BodyInternalServerError))
		return OutcomeFault
	}

	// The handler may have written directly through ResponseWriter.
	if ww.Written() {
		return OutcomeHandled
	}

	e.write(ww, r, resp)
	return OutcomeHandled
}

// readBody reads at most Content-Length bytes, bounded by the configured maximum.
// Read failures yield whatever was read so far.
func (e *Engine) readBody(r *http.Request) []byte {
	if r.Body == nil || r.ContentLength <= 0 {
		return nil
	}
	n := min(r.ContentLength, e.maxBody)
	body, _ := io.ReadAll(io.LimitReader(r.Body, n))
	return body
}

func (e *Engine) errorResponse(ctx *handler.Context, status int, fallback string) response.Response {
	e.mu.RLock()
	fn, ok := e.errorHandlers[status]
	e.mu.RUnlock()

	if !ok {
		return response.HTML(status, fallback)
	}
	return response.HTML(status, fn(ctx))
}

func (e *Engine) write(w *responseWriter, r *http.Request, resp response.Response) {
	if err := resp.Write(w); err != nil {
		e.logger.DebugContext(r.Context(), "failed to write response",
			logger.Path(r.URL.Path),
			logger.Error(err))
	}
}

func (e *Engine) recoverPanic(w *responseWriter, r *http.Request, perr *PanicError) Outcome {
	if w.Written() {
		// Can't send error response, just log the panic
		e.logger.ErrorContext(r.Context(), "panic after response written",
			logger.Error(perr),
			logger.Stack(perr.Stack()),
			logger.Method(r.Method),
			logger.Path(r.URL.Path),
			logger.StatusCode(w.Status()))
		return OutcomeFault
	}

	e.logger.ErrorContext(r.Context(), "panic recovered",
		logger.Error(perr),
		logger.Stack(perr.Stack()),
		logger.Method(r.Method),
		logger.Path(r.URL.Path))
	e.write(w, r, response.HTML(http.StatusInternalServerError, BodyInternalServerError))
	return OutcomeFault
}

func (e *Engine) observe(ctx context.Context, r *http.Request, outcome Outcome, status int, start time.Time) {
	elapsed := time.Since(start)

	e.logger.DebugContext(ctx, "request dispatched",
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
		logger.Outcome(string(outcome)),
		logger.StatusCode(status),
		logger.Latency(elapsed))

	for _, o := range e.observers {
		o.ObserveDispatch(outcome, elapsed)
	}
}
