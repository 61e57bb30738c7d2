package metrics

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/hajimekit/hajime/core/handler"
	"github.com/hajimekit/hajime/core/logger"
)

// ContentType is the Prometheus text exposition content type.
const ContentType = "text/plain; version=0.0.4; charset=utf-8"

// Handler renders every metric family gathered from g in the text
// exposition format. It is a regular route handler, so the exposition
// endpoint goes through the dispatcher like any other path.
func Handler(g prometheus.Gatherer, log *slog.Logger) handler.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}

	return func(ctx *handler.Context) handler.Result {
		if g == nil {
			log.ErrorContext(ctx, "metrics exposition failed", logger.Error(ErrNilGatherer))
			return handler.Text(http.StatusInternalServerError, "text/plain", ErrNilGatherer.Error())
		}

		families, err := g.Gather()
		if err != nil {
			// Partial results are still useful, so keep going.
			log.WarnContext(ctx, "metrics gather reported errors", logger.Error(err))
		}

		var buf bytes.Buffer
		for _, mf := range families {
			if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
				log.ErrorContext(ctx, "metrics encode failed", logger.Error(err))
				return handler.Text(http.StatusInternalServerError, "text/plain", "metrics encode failed")
			}
		}

		return handler.Structured{
			Status:  http.StatusOK,
			Headers: []handler.Header{{Name: "Content-Type", Value: ContentType}},
			Body:    buf.Bytes(),
		}
	}
}
