package response

import (
	"net/http"
	"strconv"

	"github.com/hajimekit/hajime/core/handler"
)

// Response is a normalized status, ordered header list and body.
type Response struct {
	Status  int
	Headers []handler.Header
	Body    []byte
}

// StatusLine renders the status as "<code> <reason>".
// Codes without a registered reason phrase render as "<code> Unknown".
func StatusLine(code int) string {
	reason := http.StatusText(code)
	if reason == "" {
		reason = "Unknown"
	}
	return strconv.Itoa(code) + " " + reason
}

// StatusLine returns the status line for r.
func (r Response) StatusLine() string {
	return StatusLine(r.Status)
}

// Header returns the first value of the named header, or "".
func (r Response) Header(name string) string {
	for _, h := range r.Headers {
		if http.CanonicalHeaderKey(h.Name) == http.CanonicalHeaderKey(name) {
			return h.Value
		}
	}
	return ""
}

// Write sends the headers and status first, then the body.
// Headers are added in order so repeated names keep every value.
func (r Response) Write(w http.ResponseWriter) error {
	hdr := w.Header()
	for _, h := range r.Headers {
		hdr.Add(h.Name, h.Value)
	}
	if hdr.Get("Content-Length") == "" {
		hdr.Set("Content-Length", strconv.Itoa(len(r.Body)))
	}

	w.WriteHeader(r.Status)
	if len(r.Body) == 0 {
		return nil
	}
	_, err := w.Write(r.Body)
	return err
}

// HTML builds a text/html response.
func HTML(status int, body string) Response {
	return Response{
		Status:  status,
		Headers: []handler.Header{{Name: "Content-Type", Value: "text/html"}},
		Body:    []byte(body),
	}
}

// Plain builds a text/plain response.
func Plain(status int, body string) Response {
	return Response{
		Status:  status,
		Headers: []handler.Header{{Name: "Content-Type", Value: "text/plain"}},
		Body:    []byte(body),
	}
}
