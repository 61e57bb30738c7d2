package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/hajimekit/hajime/core/session"
)

var _ context.Context = (*Context)(nil)

// Context is the per-request context passed to handlers, middleware and error handlers.
// It delegates all context.Context methods to the request's context.
type Context struct {
	w     http.ResponseWriter
	r     *http.Request
	query url.Values
	body  []byte

	jsonOnce sync.Once
	json     any

	sessionID string
	session   *session.Bag

	mu     sync.RWMutex
	values map[any]any
}

// NewContext creates a request context. body holds the bytes already read from
// the request; query holds the parsed query string.
func NewContext(w http.ResponseWriter, r *http.Request, query url.Values, body []byte) *Context {
	if query == nil {
		query = url.Values{}
	}
	return &Context{
		w:     w,
		r:     r,
		query: query,
		body:  body,
	}
}

// Deadline delegates to the request's context.
func (c *Context) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

// Done delegates to the request's context.
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err delegates to the request's context.
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value returns a value stored with SetValue, falling back to the request's context.
func (c *Context) Value(key any) any {
	c.mu.RLock()
	v, ok := c.values[key]
	c.mu.RUnlock()
	if ok {
		return v
	}
	return c.r.Context().Value(key)
}

// SetValue stores a request-scoped value retrievable with Value.
func (c *Context) SetValue(key, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
}

// Request returns the underlying *http.Request.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the underlying http.ResponseWriter.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Method returns the request method.
func (c *Context) Method() string {
	return c.r.Method
}

// Path returns the request path without the query string.
func (c *Context) Path() string {
	return c.r.URL.Path
}

// Query returns the parsed query parameters. Repeated keys keep every value in order.
func (c *Context) Query() url.Values {
	return c.query
}

// Body returns the raw request body bytes read by the dispatcher.
func (c *Context) Body() []byte {
	return c.body
}

// JSON returns the decoded request body, or nil when the body is absent or not valid JSON.
func (c *Context) JSON() any {
	c.jsonOnce.Do(func() {
		if len(c.body) == 0 {
			return
		}
		var v any
		if err := json.Unmarshal(c.body, &v); err == nil {
			c.json = v
		}
	})
	return c.json
}

// BindJSON decodes the request body into v.
func (c *Context) BindJSON(v any) error {
	if len(c.body) == 0 {
		return ErrEmptyBody
	}
	return json.Unmarshal(c.body, v)
}

// Session returns the session bag bound to this request.
// It is nil until the dispatcher resolves the session.
func (c *Context) Session() *session.Bag {
	return c.session
}

// SessionID returns the identifier of the bound session.
func (c *Context) SessionID() string {
	return c.sessionID
}

// BindSession attaches the resolved session to the context.
func (c *Context) BindSession(id string, bag *session.Bag) {
	c.sessionID = id
	c.session = bag
}
