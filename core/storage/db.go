package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/hajimekit/hajime/core/logger"
)

// sqlDriverNames maps configured drivers onto registered database/sql drivers.
var sqlDriverNames = map[string]string{
	DriverSQLite:   "sqlite",
	DriverPostgres: "pgx",
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// DB is a thin pass-through query executor over SQLite or PostgreSQL.
type DB struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
}

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the logger for query events.
func WithLogger(l *slog.Logger) Option {
	return func(d *DB) {
		if l != nil {
			d.logger = l
		}
	}
}

// Open connects to the configured database, retrying failed connection
// attempts with the configured interval.
func Open(ctx context.Context, cfg Config, opts ...Option) (*DB, error) {
	driver := strings.ToLower(cfg.Driver)
	if driver == "postgresql" {
		driver = DriverPostgres
	}
	sqlDriver, ok := sqlDriverNames[driver]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
	cfg.Driver = driver

	dsn := cfg.dataSource()
	if dsn == "" {
		return nil, ErrEmptyDSN
	}

	d := &DB{
		driver: driver,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}

	if driver == DriverSQLite {
		if err := ensureSQLiteDir(dsn); err != nil {
			return nil, err
		}
	}

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		db, err := connect(ctx, sqlDriver, dsn, cfg.ConnectTimeout)
		if err == nil {
			d.db = db
			break
		}
		lastErr = err

		d.logger.WarnContext(ctx, "database connection attempt failed",
			slog.String("driver", driver),
			slog.Int("attempt", attempt),
			logger.Error(err))

		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnectFailed, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}
	if d.db == nil {
		return nil, errors.Join(ErrConnectFailed, lastErr)
	}

	if driver == DriverSQLite {
		if err := configureSQLite(ctx, d.db); err != nil {
			_ = d.db.Close()
			return nil, err
		}
	}

	d.logger.InfoContext(ctx, "database connected", slog.String("driver", driver))
	return d, nil
}

// Wrap adopts an already opened *sql.DB. driver selects the table listing dialect.
func Wrap(db *sql.DB, driver string, opts ...Option) *DB {
	d := &DB{
		db:     db,
		driver: driver,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func connect(ctx context.Context, driver, dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if driver == sqlDriverNames[DriverSQLite] {
		db.SetMaxOpenConns(1)
	}

	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func ensureSQLiteDir(dsn string) error {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create sqlite directory: %w", err)
	}
	return nil
}

// configureSQLite applies a few safe pragmas.
func configureSQLite(ctx context.Context, db *sql.DB) error {
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(pctx, "PRAGMA foreign_keys = ON;"); err != nil {
		return fmt.Errorf("enable foreign_keys: %w", err)
	}
	if _, err := db.ExecContext(pctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		return fmt.Errorf("set busy_timeout: %w", err)
	}
	return nil
}

// Driver returns the normalized driver name.
func (d *DB) Driver() string {
	return d.driver
}

// SQL returns the underlying *sql.DB.
func (d *DB) SQL() *sql.DB {
	return d.db
}

func (d *DB) q(ctx context.Context) querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return d.db
}

// Run executes a statement that returns no rows.
func (d *DB) Run(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := d.q(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return Result{}, fmt.Errorf("run query: %w", err)
	}

	var out Result
	out.RowsAffected, _ = res.RowsAffected()
	out.LastInsertID, _ = res.LastInsertId()

	d.logger.DebugContext(ctx, "query executed", slog.Int64("rows_affected", out.RowsAffected))
	return out, nil
}

// ReadAll runs a query and returns every row.
func (d *DB) ReadAll(ctx context.Context, query string, args ...any) ([]Row, error) {
	rows, err := d.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// ReadOne runs a query and returns its first row. ok is false when no row matched.
func (d *DB) ReadOne(ctx context.Context, query string, args ...any) (row Row, ok bool, err error) {
	rows, err := d.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return Row{}, false, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return Row{}, false, fmt.Errorf("read columns: %w", err)
	}
	if !rows.Next() {
		return Row{}, false, rows.Err()
	}
	row, err = scanRow(rows, cols)
	if err != nil {
		return Row{}, false, err
	}
	return row, true, nil
}

// ListTables returns the names of user tables in sorted order.
func (d *DB) ListTables(ctx context.Context) ([]string, error) {
	var query string
	switch d.driver {
	case DriverSQLite:
		query = `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`
	case DriverPostgres:
		query = `SELECT table_name FROM information_schema.tables
WHERE table_schema = current_schema() AND table_type = 'BASE TABLE' ORDER BY table_name`
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, d.driver)
	}

	rows, err := d.q(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// TableRows returns every row of the named table.
// The name must be an existing table; it is never interpolated otherwise.
func (d *DB) TableRows(ctx context.Context, table string) ([]Row, error) {
	tables, err := d.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(tables, table) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	return d.ReadAll(ctx, "SELECT * FROM "+quoteIdent(table))
}

// InTx runs fn inside a transaction carried by the context passed to it.
// The transaction commits when fn returns nil and rolls back otherwise.
func (d *DB) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(WithTx(ctx, tx)); err != nil {
		return err
	}
	return tx.Commit()
}

// Healthcheck pings the database.
func (d *DB) Healthcheck(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}

// Close closes the database.
func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	out := []Row{}
	for rows.Next() {
		row, err := scanRow(rows, cols)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func scanRow(rows *sql.Rows, cols []string) (Row, error) {
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return Row{}, fmt.Errorf("scan row: %w", err)
	}
	return Row{Columns: cols, Values: values}, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
