package ingest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fleetdocs/fleetdocs/constants"
)

// ErrIncompleteSchedule rejects a truck whose EMI schedule is only partially
// supplied. Raised before any upload or detection work begins.
var ErrIncompleteSchedule = errors.New("if an EMI schedule is supplied, all EMI fields are required")

// StorageError is a failed upload to durable storage. Fatal: no detection
// job is submitted for the document.
type StorageError struct {
	DocType constants.DocumentType
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("could not store %s document: %v", strings.ToUpper(string(e.DocType)), e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// SubmissionError is a failure to start the detection job. The uploaded
// object stays in storage.
type SubmissionError struct {
	DocType constants.DocumentType
	Err     error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("could not start text detection for %s: %v", strings.ToUpper(string(e.DocType)), e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// ServiceError reports a detection job that terminated in FAILED on the
// service side, or a poll that could not be completed.
type ServiceError struct {
	DocType constants.DocumentType
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("text extraction failed for %s: %v", strings.ToUpper(string(e.DocType)), e.Err)
	}
	return fmt.Sprintf("text extraction failed for %s", strings.ToUpper(string(e.DocType)))
}

func (e *ServiceError) Unwrap() error { return e.Err }

// TimeoutError means the poll budget ran out before the job reached a
// terminal status. This is the orchestrator's policy, not a status the
// service returns.
type TimeoutError struct {
	DocType  constants.DocumentType
	Attempts int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("text extraction timed out for %s after %d polls", strings.ToUpper(string(e.DocType)), e.Attempts)
}

// MismatchError means the identity extracted from the document does not
// match the record the caller claimed. Carries both values; nothing is
// persisted.
type MismatchError struct {
	DocType   constants.DocumentType
	Claimed   string
	Extracted string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("verification failed for %s: document belongs to %q, not %q",
		strings.ToUpper(string(e.DocType)), e.Extracted, e.Claimed)
}
