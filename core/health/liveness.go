package health

import (
	"net/http"

	"github.com/hajimekit/hajime/core/handler"
)

const (
	AliveBody = "ALIVE"
	ReadyBody = "READY"
)

// Liveness indicates if the service process is running.
// Always returns "ALIVE" with 200 OK.
func Liveness(*handler.Context) handler.Result {
	return handler.Text(http.StatusOK, "text/plain", AliveBody)
}
