package socket

import "errors"

var (
	// ErrConnClosed is returned when sending on a closed connection.
	ErrConnClosed = errors.New("connection closed")
	// ErrNilHandler is the panic value when registering a nil handler.
	ErrNilHandler = errors.New("nil message handler")
)
