// Package handler defines the request-side types shared by the dispatcher,
// middleware and application code.
//
// A HandlerFunc receives a *Context and returns a Result, which is one of two
// variants:
//
//	func home(ctx *handler.Context) handler.Result {
//		return handler.HTML("<h1>OK</h1>")
//	}
//
//	func create(ctx *handler.Context) handler.Result {
//		return handler.Structured{
//			Status:  http.StatusCreated,
//			Headers: []handler.Header{{Name: "Content-Type", Value: "application/json"}},
//			Body:    []byte(`{"id":1}`),
//		}
//	}
//
// Context implements context.Context by delegating to the request's context,
// and exposes the parsed query, the raw body, the best-effort decoded JSON body
// and the session bag resolved for the request.
//
// Middleware runs before routing. Returning a non-nil error vetoes the request
// with 401 Unauthorized; use Reject to control the body text:
//
//	func requireAdmin(ctx *handler.Context, _ url.Values) error {
//		if role, _ := ctx.Session().GetString("role"); role != "admin" {
//			return handler.Reject("Admins only")
//		}
//		return nil
//	}
package handler
