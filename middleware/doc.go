// Package middleware provides the canonical auth gate for the dispatcher's
// middleware chain, plus transport-level wrappers for request IDs and access
// logging.
//
// Auth gate:
//
//	engine.AddMiddleware(middleware.Skip(middleware.Auth, "/login"))
//
// A request whose session has no truthy "user" entry is answered with
// 401 Unauthorized and the gate's message as the body.
//
// Transport wrappers compose around any http.Handler:
//
//	h := middleware.Chain(engine,
//		middleware.RequestID(),
//		middleware.LoggingWithLogger(log),
//	)
package middleware
