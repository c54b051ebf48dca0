// Package detect wraps the asynchronous text-detection service. A document
// is submitted by object key; the resulting job is polled until it reports a
// terminal status.
package detect

import (
	"context"
	"errors"

	"github.com/fleetdocs/fleetdocs/constants"
)

// ErrJobNotFound marks a poll for a job ID the service does not know.
// Distinct from a job that ran and FAILED.
var ErrJobNotFound = errors.New("detection job not found")

// Result is one poll observation. Lines carries the detected text lines,
// concatenated across all result pages in page order, and is populated only
// when Status is SUCCEEDED.
type Result struct {
	Status constants.DetectionStatus
	Lines  []string
}

// TextDetector is the narrow contract against the external service.
type TextDetector interface {
	// Submit starts an asynchronous text-detection job for a stored object
	// and returns an opaque job handle.
	Submit(ctx context.Context, objectKey string) (jobID string, err error)
	// Poll reports the current status of a job, with all pages of lines
	// once the job has succeeded.
	Poll(ctx context.Context, jobID string) (Result, error)
}
