// Package admin renders a read-only HTML view of every table in the
// application database.
//
//	engine.AddRoute("/admin", admin.Handler(db))
//
// The panel is intended for local development. Guard it with middleware
// before exposing it anywhere else.
package admin
