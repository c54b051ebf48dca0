// Package server exposes the fleet services over gRPC. Handlers stay thin:
// parse and validate the wire request, call the service layer, convert the
// result back.
package server

import (
	"strings"

	"github.com/google/uuid"

	"github.com/fleetdocs/fleetdocs/internal/common"
)

// parseUUID validates a required UUID request field.
func parseUUID(field, value string) (uuid.UUID, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return uuid.Nil, common.InvalidArgumentError(field + " is required")
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil, common.InvalidArgumentError(field + " must be a UUID")
	}
	return id, nil
}
