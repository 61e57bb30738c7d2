package storage

import (
	"net"
	"net/url"
	"strconv"
	"time"
)

// Supported driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds database connection configuration.
type Config struct {
	// Driver is "sqlite" or "postgres". Empty means no database is configured.
	Driver string `env:"DB_DRIVER" envDefault:""`
	// DSN is used as-is when set. For sqlite it is the database file path.
	DSN string `env:"DB_DSN"`

	// Discrete postgres settings, used when DSN is empty.
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASSWORD"`
	Database string `env:"DB_NAME"`
	SSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`

	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"5s"`
	RetryAttempts  int           `env:"DB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"DB_RETRY_INTERVAL" envDefault:"1s"`
}

// Enabled reports whether a database driver is configured.
func (c Config) Enabled() bool {
	return c.Driver != ""
}

// dataSource returns the DSN handed to database/sql.
func (c Config) dataSource() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.Driver == DriverSQLite {
		return c.Database
	}

	port := c.Port
	if port == 0 {
		port = 5432
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(port)),
		Path:   "/" + c.Database,
	}
	if c.User != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{c.SSLMode}}.Encode()
	}
	return u.String()
}
