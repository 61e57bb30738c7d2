package storage

import (
	"database/sql"
	"errors"
)

var (
	ErrUnsupportedDriver = errors.New("unsupported database driver: use sqlite or postgres")
	ErrEmptyDSN          = errors.New("database DSN is empty")
	ErrUnknownTable      = errors.New("unknown table")
	ErrConnectFailed     = errors.New("failed to connect to database")
	ErrHealthcheckFailed = errors.New("database healthcheck failed")
)

// IsNotFoundError reports whether err means a query matched no rows.
func IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
