package app

import "errors"

var (
	ErrInvalidConfig = errors.New("app: invalid configuration")
	ErrNilLogger     = errors.New("app: logger cannot be nil")
	ErrNilDatabase   = errors.New("app: database cannot be nil")
	ErrNilRegistry   = errors.New("app: metrics registry cannot be nil")
	ErrNilAssets     = errors.New("app: asset filesystem cannot be nil")
	ErrAlreadyLaunch = errors.New("app: already launched")
)
