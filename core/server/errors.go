package server

import "errors"

var (
	ErrMissingAddress       = errors.New("server address is required")
	ErrServerAlreadyRunning = errors.New("server is already running")
	ErrFailedLoadCert       = errors.New("failed to load certificate")
	ErrInvalidPort          = errors.New("invalid port")
	ErrNoFreePort           = errors.New("no free port available")
)
