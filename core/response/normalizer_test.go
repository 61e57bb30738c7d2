package response_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hajimekit/hajime/core/handler"
	"github.com/hajimekit/hajime/core/response"
	"github.com/hajimekit/hajime/core/session"
)

type bogusResult struct{ handler.HTML }

func TestNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	n := response.NewNormalizer(session.DefaultCookieOptions())
	cookie := "session_id=abc; Path=/; HttpOnly; SameSite=Lax"

	t.Run("html result", func(t *testing.T) {
		t.Parallel()

		resp, err := n.Normalize(handler.HTML("<h1>OK</h1>"), "abc")
		require.NoError(t, err)

		assert.Equal(t, "200 OK", resp.StatusLine())
		assert.Equal(t, []handler.Header{
			{Name: "Content-Type", Value: "text/html"},
			{Name: "Set-Cookie", Value: cookie},
		}, resp.Headers)
		assert.Equal(t, []byte("<h1>OK</h1>"), resp.Body)
	})

	t.Run("structured result", func(t *testing.T) {
		t.Parallel()

		resp, err := n.Normalize(handler.Structured{
			Status:  http.StatusCreated,
			Headers: []handler.Header{{Name: "Content-Type", Value: "application/json"}},
			Body:    []byte(`{"id":1}`),
		}, "abc")
		require.NoError(t, err)

		assert.Equal(t, "201 Created", resp.StatusLine())
		assert.Equal(t, []handler.Header{
			{Name: "Content-Type", Value: "application/json"},
			{Name: "Set-Cookie", Value: cookie},
		}, resp.Headers)
		assert.Equal(t, []byte(`{"id":1}`), resp.Body)
	})

	t.Run("structured result does not alias caller headers", func(t *testing.T) {
		t.Parallel()

		headers := make([]handler.Header, 1, 4)
		headers[0] = handler.Header{Name: "X-A", Value: "1"}
		_, err := n.Normalize(handler.Structured{Status: http.StatusOK, Headers: headers}, "abc")
		require.NoError(t, err)

		assert.Len(t, headers, 1)
		assert.Equal(t, handler.Header{}, headers[:2][1])
	})

	t.Run("pointer structured result", func(t *testing.T) {
		t.Parallel()

		resp, err := n.Normalize(&handler.Structured{Status: http.StatusAccepted}, "abc")
		require.NoError(t, err)
		assert.Equal(t, http.StatusAccepted, resp.Status)
	})

	t.Run("zero status defaults to 200", func(t *testing.T) {
		t.Parallel()

		resp, err := n.Normalize(handler.Structured{Body: []byte("x")}, "abc")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Status)
	})

	t.Run("no session id omits cookie", func(t *testing.T) {
		t.Parallel()

		resp, err := n.Normalize(handler.HTML("x"), "")
		require.NoError(t, err)
		assert.Empty(t, resp.Header("Set-Cookie"))
	})

	t.Run("nil result", func(t *testing.T) {
		t.Parallel()

		_, err := n.Normalize(nil, "abc")
		assert.ErrorIs(t, err, response.ErrNilResult)

		var nilPtr *handler.Structured
		_, err = n.Normalize(nilPtr, "abc")
		assert.ErrorIs(t, err, response.ErrNilResult)
	})

	t.Run("unknown variant", func(t *testing.T) {
		t.Parallel()

		_, err := n.Normalize(bogusResult{}, "abc")
		assert.ErrorIs(t, err, response.ErrUnknownResult)
	})

	t.Run("status out of range", func(t *testing.T) {
		t.Parallel()

		for _, status := range []int{-1, 42, 99, 1000} {
			_, err := n.Normalize(handler.Structured{Status: status}, "abc")
			assert.ErrorIs(t, err, response.ErrInvalidStatus, status)
		}

		resp, err := n.Normalize(handler.Structured{Status: 999}, "abc")
		require.NoError(t, err)
		assert.Equal(t, 999, resp.Status)
	})
}
