package metrics

import "errors"

var (
	ErrNilRegisterer = errors.New("metrics: registerer is required")
	ErrNilGatherer   = errors.New("metrics: gatherer is required")
	ErrRegister      = errors.New("metrics: failed to register collector")
)
