// Package router provides the route table used by the dispatcher.
//
// Routes are keyed by exact path. There is no pattern or parameter matching;
// "/users" and "/users/" are different routes. Registering a path twice
// replaces the earlier route, methods included:
//
//	t := router.NewTable()
//	t.Register("/", home)                                     // GET only
//	t.Register("/items", items, http.MethodGet, http.MethodPost)
//
//	route, err := t.Resolve("/items")
//	if errors.Is(err, router.ErrNotFound) {
//		// 404
//	}
//	if !route.Allows(r.Method) {
//		// 405, Allow: strings.Join(route.Methods, ", ")
//	}
package router
