package response

import (
	"bytes"
	"context"
	"net/http"

	"github.com/a-h/templ"

	"github.com/hajimekit/hajime/core/handler"
)

// Templ renders component with ctx into a 200 text/html result.
func Templ(ctx context.Context, component templ.Component) handler.Result {
	return TemplWithStatus(ctx, component, http.StatusOK)
}

// TemplWithStatus renders component into a text/html result with the given status.
// A nil component or a render failure yields a plain 500.
func TemplWithStatus(ctx context.Context, component templ.Component, status int) handler.Result {
	if status == 0 {
		status = http.StatusOK
	}
	if component == nil {
		return handler.Text(http.StatusInternalServerError, "text/plain", http.StatusText(http.StatusInternalServerError))
	}

	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		return handler.Text(http.StatusInternalServerError, "text/plain", http.StatusText(http.StatusInternalServerError))
	}

	return handler.Structured{
		Status:  status,
		Headers: []handler.Header{{Name: "Content-Type", Value: "text/html"}},
		Body:    buf.Bytes(),
	}
}
