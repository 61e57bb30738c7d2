package response

import (
	"fmt"
	"net/http"

	"github.com/hajimekit/hajime/core/handler"
	"github.com/hajimekit/hajime/core/session"
)

// Normalizer converts handler results into Responses carrying the session cookie.
type Normalizer struct {
	Cookie session.CookieOptions
}

// NewNormalizer creates a Normalizer with the given cookie attributes.
func NewNormalizer(cookie session.CookieOptions) *Normalizer {
	return &Normalizer{Cookie: cookie}
}

// Normalize renders result into a Response and appends the session cookie.
//
// HTML results become 200 with Content-Type text/html. Structured results keep
// their status and headers; a zero status is treated as 200 and a status
// outside 100-999 is rejected with ErrInvalidStatus.
func (n *Normalizer) Normalize(result handler.Result, sessionID string) (Response, error) {
	var resp Response

	switch res := result.(type) {
	case nil:
		return Response{}, ErrNilResult
	case handler.HTML:
		resp = HTML(http.StatusOK, string(res))
	case handler.Structured:
		resp = Response{
			Status:  res.Status,
			Headers: make([]handler.Header, 0, len(res.Headers)+1),
			Body:    res.Body,
		}
		if resp.Status == 0 {
			resp.Status = http.StatusOK
		}
		if resp.Status < 100 || resp.Status > 999 {
			return Response{}, fmt.Errorf("%w: %d", ErrInvalidStatus, res.Status)
		}
		resp.Headers = append(resp.Headers, res.Headers...)
	case *handler.Structured:
		if res == nil {
			return Response{}, ErrNilResult
		}
		return n.Normalize(*res, sessionID)
	default:
		return Response{}, fmt.Errorf("%w: %T", ErrUnknownResult, result)
	}

	if sessionID != "" {
		resp.Headers = append(resp.Headers, handler.Header{
			Name:  "Set-Cookie",
			Value: n.Cookie.Header(sessionID),
		})
	}
	return resp, nil
}
