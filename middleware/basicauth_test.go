package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hajimekit/hajime/core/handler"
	"github.com/hajimekit/hajime/middleware"
)

func TestBasicAuth(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	guarded := middleware.BasicAuth("", "admin", string(hash), func(*handler.Context) handler.Result {
		return handler.HTML("panel")
	})

	tests := []struct {
		name    string
		user    string
		pass    string
		setAuth bool
		allowed bool
	}{
		{name: "valid", user: "admin", pass: "s3cret", setAuth: true, allowed: true},
		{name: "no credentials", allowed: false},
		{name: "wrong password", user: "admin", pass: "nope", setAuth: true, allowed: false},
		{name: "wrong user", user: "root", pass: "s3cret", setAuth: true, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.setAuth {
				req.SetBasicAuth(tt.user, tt.pass)
			}
			ctx := handler.NewContext(httptest.NewRecorder(), req, req.URL.Query(), nil)

			res := guarded(ctx)
			if tt.allowed {
				assert.Equal(t, handler.HTML("panel"), res)
				return
			}

			s, ok := res.(handler.Structured)
			require.True(t, ok)
			assert.Equal(t, http.StatusUnauthorized, s.Status)
			assert.Equal(t, middleware.DefaultAuthMessage, string(s.Body))
			assert.Contains(t, s.Headers, handler.Header{
				Name:  "WWW-Authenticate",
				Value: `Basic realm="Restricted", charset="UTF-8"`,
			})
		})
	}
}
