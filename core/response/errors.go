package response

import "errors"

var (
	// ErrNilResult is returned when a handler returns no result.
	ErrNilResult = errors.New("nil result")
	// ErrUnknownResult is returned for a Result variant the normalizer does not recognize.
	ErrUnknownResult = errors.New("unknown result type")
	// ErrInvalidStatus is returned for a Structured status outside 100-999.
	ErrInvalidStatus = errors.New("invalid status code")
)
