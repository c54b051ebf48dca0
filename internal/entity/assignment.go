package entity

import (
	"time"

	"github.com/google/uuid"
)

// Assignment pairs a driver with a truck. Active assignments move to history
// either when completed explicitly or when the archival sweep ages them out.
type Assignment struct {
	ID          uuid.UUID  `json:"id"`
	CompanyID   uuid.UUID  `json:"company_id"`
	TruckID     uuid.UUID  `json:"truck_id"`
	DriverID    uuid.UUID  `json:"driver_id"`
	Status      string     `json:"status"`
	AssignedAt  time.Time  `json:"assigned_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
