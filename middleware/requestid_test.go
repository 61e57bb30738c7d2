package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hajimekit/hajime/middleware"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("generates uuid", func(t *testing.T) {
		t.Parallel()

		var captured string
		h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := middleware.GetRequestID(r.Context())
			assert.True(t, ok)
			captured = id
		}))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		_, err := uuid.Parse(captured)
		require.NoError(t, err)
		assert.Equal(t, captured, w.Header().Get("X-Request-ID"))
	})

	t.Run("custom generator and header", func(t *testing.T) {
		t.Parallel()

		h := middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator:  func() string { return "fixed" },
			HeaderName: "X-Trace",
		})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "fixed", w.Header().Get("X-Trace"))
	})

	t.Run("reuses incoming id when configured", func(t *testing.T) {
		t.Parallel()

		h := middleware.RequestIDWithConfig(middleware.RequestIDConfig{UseExisting: true})(
			http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "upstream-1")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, "upstream-1", w.Header().Get("X-Request-ID"))
	})

	t.Run("ignores incoming id by default", func(t *testing.T) {
		t.Parallel()

		h := middleware.RequestID()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "upstream-1")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.NotEqual(t, "upstream-1", w.Header().Get("X-Request-ID"))
	})
}

func TestGetRequestID_Missing(t *testing.T) {
	t.Parallel()

	_, ok := middleware.GetRequestID(t.Context())
	assert.False(t, ok)
}
