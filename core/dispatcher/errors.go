package dispatcher

import (
	"errors"
	"fmt"
)

var (
	ErrNilRouteTable   = errors.New("nil route table")
	ErrNilSessionStore = errors.New("nil session store")
)

// PanicError wraps a value recovered from a panicking handler or middleware.
type PanicError struct {
	value any
	stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.value)
}

// Value returns the original panic value.
func (e *PanicError) Value() any {
	return e.value
}

// Stack returns the stack trace captured at the panic point.
func (e *PanicError) Stack() []byte {
	return e.stack
}

// Unwrap allows errors.Is/As to work with wrapped panics.
func (e *PanicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}
