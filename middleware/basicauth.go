package middleware

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/hajimekit/hajime/core/handler"
)

// DefaultRealm is the realm advertised by BasicAuth challenges.
const DefaultRealm = "Restricted"

// BasicAuth guards next with HTTP basic authentication. The password is
// checked against passwordHash, a bcrypt hash. Requests without valid
// credentials get 401 with a WWW-Authenticate challenge.
func BasicAuth(realm, user, passwordHash string, next handler.HandlerFunc) handler.HandlerFunc {
	if realm == "" {
		realm = DefaultRealm
	}
	challenge := "Basic realm=" + strconv.Quote(realm) + ", charset=\"UTF-8\""
	hash := []byte(passwordHash)

	return func(ctx *handler.Context) handler.Result {
		u, p, ok := ctx.Request().BasicAuth()
		userOK := subtle.ConstantTimeCompare([]byte(u), []byte(user)) == 1
		// The hash is always compared so timing does not reveal the user name.
		passOK := bcrypt.CompareHashAndPassword(hash, []byte(p)) == nil
		if !ok || !userOK || !passOK {
			return handler.Structured{
				Status: http.StatusUnauthorized,
				Headers: []handler.Header{
					{Name: "Content-Type", Value: "text/plain; charset=utf-8"},
					{Name: "WWW-Authenticate", Value: challenge},
				},
				Body: []byte(DefaultAuthMessage),
			}
		}
		return next(ctx)
	}
}
