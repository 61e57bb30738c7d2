package handler

import (
	"errors"
	"net/url"
)

// ErrEmptyBody is returned by BindJSON when the request carried no body.
var ErrEmptyBody = errors.New("request body is empty")

// HandlerFunc handles a routed request and returns what to render.
type HandlerFunc func(ctx *Context) Result

// Middleware inspects a request before routing. A non-nil error with a
// non-empty message rejects the request with 401 Unauthorized and stops the
// chain; an empty message, such as Reject(""), lets the chain continue.
type Middleware func(ctx *Context, query url.Values) error

// ErrorHandlerFunc renders the HTML body of an error response.
type ErrorHandlerFunc func(ctx *Context) string

// Rejection is the error a middleware returns to veto a request.
// Message becomes the response body.
type Rejection struct {
	Message string
}

// Reject returns a Rejection carrying msg.
func Reject(msg string) *Rejection {
	return &Rejection{Message: msg}
}

func (r *Rejection) Error() string {
	return r.Message
}

// RejectionMessage extracts the body text for a middleware error.
func RejectionMessage(err error) string {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej.Message
	}
	return err.Error()
}
