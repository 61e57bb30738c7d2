// Package static serves files from a directory under a reserved URL prefix.
//
//	h := static.New("public", static.WithPrefix("/assets/"))
//	// GET /assets/css/site.css -> public/css/site.css
//
// The prefix is stripped and the remainder is cleaned as a rooted path before
// being joined onto the directory, so "/assets/../../etc/passwd" resolves to
// "public/etc/passwd" and never leaves the root. Content-Type is guessed from
// the extension with application/octet-stream as fallback. Range and
// conditional requests are handled by http.ServeContent.
//
// Missing files, directories and rejected paths answer 404 with a text/plain
// "404 Not Found" body.
package static
