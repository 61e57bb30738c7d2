package middleware

import "net/http"

// Chain wraps h with the given transport middleware.
// The first middleware is the outermost, so it runs first.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
