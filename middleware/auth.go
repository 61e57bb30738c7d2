package middleware

import (
	"net/url"

	"github.com/hajimekit/hajime/core/handler"
)

// DefaultAuthMessage is the body returned when Auth rejects a request.
const DefaultAuthMessage = "Unauthorized access"

// SessionUserKey is the session key inspected by the auth gate.
const SessionUserKey = "user"

// Auth rejects requests whose session has no "user" entry.
var Auth handler.Middleware = RequireUser(DefaultAuthMessage)

// RequireUser creates an auth gate rejecting with message when the session's
// "user" entry is absent, nil, an empty string or false.
func RequireUser(message string) handler.Middleware {
	return RequireSessionKey(SessionUserKey, message)
}

// RequireSessionKey creates an auth gate on an arbitrary session key.
func RequireSessionKey(key, message string) handler.Middleware {
	return func(ctx *handler.Context, _ url.Values) error {
		bag := ctx.Session()
		if bag == nil {
			return handler.Reject(message)
		}
		v, ok := bag.Get(key)
		if !ok || !truthy(v) {
			return handler.Reject(message)
		}
		return nil
	}
}

// Skip wraps mw so it is bypassed for the given exact paths.
func Skip(mw handler.Middleware, paths ...string) handler.Middleware {
	skip := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		skip[p] = struct{}{}
	}
	return func(ctx *handler.Context, query url.Values) error {
		if _, ok := skip[ctx.Path()]; ok {
			return nil
		}
		return mw(ctx, query)
	}
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	default:
		return true
	}
}
