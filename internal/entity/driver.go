package entity

import (
	"time"

	"github.com/google/uuid"
)

// Driver represents a licensed driver for data transfer between layers.
// License is the verified driving-license document record.
type Driver struct {
	ID        uuid.UUID       `json:"id"`
	CompanyID uuid.UUID       `json:"company_id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Phone     string          `json:"phone"`
	License   *DocumentRecord `json:"license,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
