package constants

// DetectionStatus is the tri-state reported by the external text-detection
// service for a submitted job. Stable values (these exact strings come back
// over the wire).
type DetectionStatus string

const (
	DetectionInProgress DetectionStatus = "IN_PROGRESS" // still running, poll again
	DetectionSucceeded  DetectionStatus = "SUCCEEDED"   // lines available
	DetectionFailed     DetectionStatus = "FAILED"      // terminal failure on the service side
)

// AssignmentStatus tracks the lifecycle of a truck/driver work assignment.
type AssignmentStatus string

const (
	AssignmentActive  AssignmentStatus = "active"
	AssignmentHistory AssignmentStatus = "history"
)

var AssignmentStatuses = []string{string(AssignmentActive), string(AssignmentHistory)}
