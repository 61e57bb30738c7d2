// Package dispatcher implements the request dispatch engine.
//
// Every request moves through the same fixed sequence of steps and ends in
// exactly one terminal Outcome:
//
//  1. Parse the path, query string and at most Content-Length body bytes.
//  2. Paths under the static prefix go straight to the static handler (OutcomeStatic).
//  3. Resolve or mint the session from the session_id cookie.
//  4. Run middleware in order; the first error answers 401 (OutcomeUnauthorized).
//  5. Resolve the route: unknown path answers 404 (OutcomeNotFound), a method
//     outside the route's set answers 405 with an Allow header (OutcomeMethodNotAllowed).
//  6. Invoke the handler.
//  7. Normalize the result, append the session cookie and write it (OutcomeHandled).
//
// A panicking handler or middleware, or a nil result, answers 500 unless a
// response was already written (OutcomeFault).
//
// Basic usage:
//
//	e := dispatcher.New(
//		dispatcher.WithLogger(log),
//		dispatcher.WithStatic("/static/", static.New("public")),
//	)
//	e.AddMiddleware(middleware.RequireUser("Login required")).
//		AddRoute("/", home).
//		AddRoute("/items", items, http.MethodGet, http.MethodPost).
//		SetErrorHandler(http.StatusNotFound, func(*handler.Context) string {
//			return "<h1>Nothing here</h1>"
//		})
//
//	http.ListenAndServe(":8000", e)
//
// 401, 404 and 405 responses are text/html and carry no session cookie.
package dispatcher
