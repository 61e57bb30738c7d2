package router

import (
	"net/http"
	"slices"
	"sort"
	"sync"

	"github.com/hajimekit/hajime/core/handler"
)

// DefaultMethods is the method set used when a route is registered without any.
var DefaultMethods = []string{http.MethodGet}

// Route binds an exact path to a handler and its allowed methods.
type Route struct {
	Path    string
	Methods []string
	Handler handler.HandlerFunc
}

// Allows reports whether method is in the route's method set.
// Matching is exact and case-sensitive.
func (r Route) Allows(method string) bool {
	return slices.Contains(r.Methods, method)
}

// Table maps exact request paths to routes.
// Registration is expected at startup; lookups are safe for concurrent use.
type Table struct {
	mu     sync.RWMutex
	routes map[string]Route
}

// NewTable creates an empty route table.
func NewTable() *Table {
	return &Table{routes: make(map[string]Route)}
}

// Register stores the route for path, replacing any previous registration.
// With no methods the route answers GET only. Duplicate methods are collapsed.
// Panics if h is nil.
func (t *Table) Register(path string, h handler.HandlerFunc, methods ...string) {
	if h == nil {
		panic("router: nil handler for " + path)
	}
	if len(methods) == 0 {
		methods = DefaultMethods
	}

	set := slices.Clone(methods)
	slices.Sort(set)
	set = slices.Compact(set)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.routes[path] = Route{Path: path, Methods: set, Handler: h}
}

// Resolve returns the route registered for path.
// Paths are compared verbatim: trailing slashes and case are significant.
func (t *Table) Resolve(path string) (Route, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	r, ok := t.routes[path]
	if !ok {
		return Route{}, ErrNotFound
	}
	return r, nil
}

// MethodAllowed reports whether route accepts method.
func MethodAllowed(route Route, method string) bool {
	return route.Allows(method)
}

// Len returns the number of registered paths.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.routes)
}

// Routes returns all registered routes sorted by path.
func (t *Table) Routes() []Route {
	t.mu.RLock()
	routes := make([]Route, 0, len(t.routes))
	for _, r := range t.routes {
		routes = append(routes, r)
	}
	t.mu.RUnlock()

	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
	return routes
}
