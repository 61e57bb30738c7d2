package s3

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var (
	ErrInvalidConfig = errors.New("s3: bucket and region are required")
	ErrAccessDenied  = errors.New("s3: access denied")
	ErrUnavailable   = errors.New("s3: service unavailable")
	ErrTooLarge      = errors.New("s3: object exceeds size limit")
)

// classifyError maps S3 errors onto fs errors where one exists, so callers
// can use errors.Is(err, fs.ErrNotExist).
func classifyError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fs.ErrNotExist
	}

	var nf *types.NotFound
	if errors.As(err, &nf) {
		return fs.ErrNotExist
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return fs.ErrNotExist
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %s", ErrAccessDenied, op)
		case "SlowDown", "ServiceUnavailable", "RequestTimeout":
			return fmt.Errorf("%w: %s", ErrUnavailable, op)
		default:
			return fmt.Errorf("%s failed (code: %s): %w", op, apiErr.ErrorCode(), err)
		}
	}

	return fmt.Errorf("%s failed: %w", op, err)
}
