package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hajimekit/hajime/core/handler"
	"github.com/hajimekit/hajime/core/response"
)

func TestStatusLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code int
		want string
	}{
		{code: http.StatusOK, want: "200 OK"},
		{code: http.StatusCreated, want: "201 Created"},
		{code: http.StatusUnauthorized, want: "401 Unauthorized"},
		{code: http.StatusNotFound, want: "404 Not Found"},
		{code: http.StatusMethodNotAllowed, want: "405 Method Not Allowed"},
		{code: 599, want: "599 Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, response.StatusLine(tt.code))
		})
	}
}

func TestResponse_Write(t *testing.T) {
	t.Parallel()

	t.Run("headers then body", func(t *testing.T) {
		t.Parallel()

		resp := response.Response{
			Status: http.StatusCreated,
			Headers: []handler.Header{
				{Name: "Content-Type", Value: "application/json"},
				{Name: "Set-Cookie", Value: "a=1"},
				{Name: "Set-Cookie", Value: "b=2"},
			},
			Body: []byte(`{"id":1}`),
		}

		w := httptest.NewRecorder()
		require.NoError(t, resp.Write(w))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.Equal(t, []string{"a=1", "b=2"}, w.Header().Values("Set-Cookie"))
		assert.Equal(t, "8", w.Header().Get("Content-Length"))
		assert.Equal(t, `{"id":1}`, w.Body.String())
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		require.NoError(t, response.Response{Status: http.StatusNoContent}.Write(w))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}

func TestResponse_Header(t *testing.T) {
	t.Parallel()

	resp := response.HTML(http.StatusOK, "<p>x</p>")
	assert.Equal(t, "text/html", resp.Header("content-type"))
	assert.Empty(t, resp.Header("X-Missing"))
	assert.Equal(t, "200 OK", resp.StatusLine())

	plain := response.Plain(http.StatusNotFound, "404 Not Found")
	assert.Equal(t, "text/plain", plain.Header("Content-Type"))
	assert.Equal(t, "404 Not Found", string(plain.Body))
}
