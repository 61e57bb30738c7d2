package response

import (
	"encoding/json"
	"net/http"

	"github.com/hajimekit/hajime/core/handler"
)

// JSON encodes v as a 200 application/json result.
func JSON(v any) handler.Result {
	return JSONWithStatus(v, http.StatusOK)
}

// JSONWithStatus encodes v as an application/json result with the given status.
// An encoding failure yields a 500 with a JSON error object.
func JSONWithStatus(v any, status int) handler.Result {
	if status == 0 {
		status = http.StatusOK
	}

	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": err.Error()})
	}

	return handler.Structured{
		Status:  status,
		Headers: []handler.Header{{Name: "Content-Type", Value: "application/json"}},
		Body:    body,
	}
}
