package ingest

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// StatusError maps pipeline failures onto gRPC statuses: a bad or
// mismatched document is the caller's problem, a slow or broken detection
// service is not.
func StatusError(err error) error {
	var mismatch *MismatchError
	var timeout *TimeoutError
	switch {
	case errors.Is(err, ErrIncompleteSchedule):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &mismatch):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &timeout):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Unavailable, err.Error())
	}
}
