package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/fleetdocs/fleetdocs/internal/parser"
)

// DocumentRecord is one verified document on a truck or driver: the fields
// extracted from it plus where the original file lives.
type DocumentRecord struct {
	Fields     parser.Fields `json:"fields"`
	S3URL      string        `json:"s3_url"`
	VerifiedAt time.Time     `json:"verified_at"`
}

// EMISchedule is a truck's loan schedule. Pointer fields mark presence: the
// schedule is all-or-nothing.
type EMISchedule struct {
	TotalLoanAmount       *float64     `json:"total_loan_amount,omitempty"`
	EMIPerMonth           *float64     `json:"emi_per_month,omitempty"`
	StartDate             *parser.Date `json:"emi_start_date,omitempty"`
	EndDate               *parser.Date `json:"emi_end_date,omitempty"`
	CompletedInstallments int          `json:"completed_installments"`
}

// Complete reports whether every required schedule field is present. A nil
// schedule counts as complete: no loan, nothing to fill in.
func (s *EMISchedule) Complete() bool {
	if s == nil {
		return true
	}
	return s.TotalLoanAmount != nil && s.EMIPerMonth != nil && s.StartDate != nil && s.EndDate != nil
}

// Truck represents a registered vehicle for data transfer between layers.
// Documents is keyed by document type and holds the seven verified slots.
type Truck struct {
	ID          uuid.UUID                 `json:"id"`
	CompanyID   uuid.UUID                 `json:"company_id"`
	TruckNumber string                    `json:"truck_number"`
	Documents   map[string]DocumentRecord `json:"documents"`
	EMI         *EMISchedule              `json:"emi,omitempty"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}
