package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hajimekit/hajime/core/handler"
	"github.com/hajimekit/hajime/core/logger"
)

// Check reports whether a dependency is usable.
type Check func(context.Context) error

// Readiness verifies all service dependencies are functioning.
// Returns "READY" if all checks pass, 503 Service Unavailable if any fail.
// Nil checks are skipped.
func Readiness(log *slog.Logger, checks ...Check) handler.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}

	return func(ctx *handler.Context) handler.Result {
		for _, check := range checks {
			if check == nil {
				continue
			}
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "Readiness check failed", logger.Error(err))
				return handler.Text(http.StatusServiceUnavailable, "text/plain", http.StatusText(http.StatusServiceUnavailable))
			}
		}

		return handler.Text(http.StatusOK, "text/plain", ReadyBody)
	}
}
