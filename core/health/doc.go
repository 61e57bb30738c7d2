// Package health provides route handlers for service health monitoring.
//
// Handlers:
//   - Liveness: process is running (no dependency checks)
//   - Readiness: all dependencies are available
//
// Usage:
//
//	engine.AddRoute("/health/live", health.Liveness)
//	engine.AddRoute("/health/ready", health.Readiness(log,
//		sessions.Healthcheck,
//		db.Healthcheck,
//	))
//
// Dependency checks follow the func(context.Context) error signature.
package health
