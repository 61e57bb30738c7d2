package session

import "errors"

var (
	// ErrStoreAlreadyStarted is returned when Start is called on a running store.
	ErrStoreAlreadyStarted = errors.New("session store already started")
	// ErrStoreNotStarted is returned when Stop is called on a store that is not running.
	ErrStoreNotStarted = errors.New("session store not started")
	// ErrCleanupDisabled is returned when Start is called with a non-positive cleanup interval.
	ErrCleanupDisabled = errors.New("session cleanup interval must be positive")
	// ErrShutdownTimeout is returned when in-flight cleanup does not finish within the shutdown timeout.
	ErrShutdownTimeout = errors.New("session store shutdown timeout exceeded")
	// ErrJanitorNotRunning is reported by Healthcheck when cleanup is configured but not running.
	ErrJanitorNotRunning = errors.New("session cleanup is configured but not running")
)
