package session

import (
	"net/http"
	"strings"
)

// CookieName is the cookie carrying the session identifier.
const CookieName = "session_id"

// CookieOptions controls the attributes of the Set-Cookie header issued for a session.
type CookieOptions struct {
	Path     string
	Domain   string
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
}

// DefaultCookieOptions returns Path=/, HttpOnly, SameSite=Lax.
func DefaultCookieOptions() CookieOptions {
	return DefaultConfig().Cookie()
}

// Header renders the Set-Cookie value for id.
func (o CookieOptions) Header(id string) string {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     o.Path,
		Domain:   o.Domain,
		Secure:   o.Secure,
		HttpOnly: o.HTTPOnly,
		SameSite: o.SameSite,
	}
	return c.String()
}

// ParseCookie extracts the value of the named cookie from a raw Cookie header.
// Tokens without '=' are skipped rather than rejected, and when the name
// repeats the last occurrence wins. Empty values count as absent.
func ParseCookie(header, name string) (string, bool) {
	var (
		value string
		found bool
	)
	for part := range strings.SplitSeq(header, ";") {
		part = strings.TrimSpace(part)
		k, v, ok := strings.Cut(part, "=")
		if !ok || strings.TrimSpace(k) != name {
			continue
		}
		v = strings.Trim(strings.TrimSpace(v), `"`)
		if v == "" {
			continue
		}
		value, found = v, true
	}
	return value, found
}
