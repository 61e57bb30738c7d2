package static

import "errors"

var (
	// ErrOutsideRoot is returned when a request path resolves outside the static root.
	ErrOutsideRoot = errors.New("invalid path: outside root directory")
	// ErrNotDirectory is returned when the configured root is not a directory.
	ErrNotDirectory = errors.New("static root is not a directory")
)
