// Package response turns handler results into wire responses.
//
// A Normalizer maps the two handler.Result variants onto a uniform Response
// and appends the session cookie:
//
//	n := response.NewNormalizer(session.DefaultCookieOptions())
//	resp, err := n.Normalize(handler.HTML("<h1>OK</h1>"), sessionID)
//	// resp.StatusLine() == "200 OK"
//	// Content-Type: text/html
//	// Set-Cookie: session_id=<id>; Path=/; HttpOnly; SameSite=Lax
//	err = resp.Write(w)
//
// Status lines use the standard reason phrase for the code ("201 Created",
// "404 Not Found"). JSON and JSONWithStatus build application/json results.
package response
