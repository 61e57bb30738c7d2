// Package storage is a thin pass-through query executor over SQLite
// (modernc.org/sqlite) or PostgreSQL (pgx through database/sql).
//
//	db, err := storage.Open(ctx, storage.Config{Driver: "sqlite", DSN: "data/app.db"})
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//
//	_, err = db.Run(ctx, "INSERT INTO users (name) VALUES (?)", "ada")
//	rows, err := db.ReadAll(ctx, "SELECT id, name FROM users")
//	row, ok, err := db.ReadOne(ctx, "SELECT name FROM users WHERE id = ?", 1)
//	tables, err := db.ListTables(ctx)
//
// Placeholders follow the driver: "?" for SQLite, "$1" for PostgreSQL.
//
// Queries run inside a transaction when the context carries one:
//
//	err = db.InTx(ctx, func(ctx context.Context) error {
//		if _, err := db.Run(ctx, "UPDATE accounts SET balance = balance - 10 WHERE id = 1"); err != nil {
//			return err
//		}
//		_, err := db.Run(ctx, "UPDATE accounts SET balance = balance + 10 WHERE id = 2")
//		return err
//	})
//
// SQLite databases are pinned to a single connection so ":memory:" databases
// persist across calls.
package storage
