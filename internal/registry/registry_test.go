package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetdocs/fleetdocs/constants"
	"github.com/fleetdocs/fleetdocs/internal/parser"
)

func TestExtractDispatch(t *testing.T) {
	t.Parallel()

	text := "Vehicle: MH20EE1234\nPermit No: NP/001\nValidity of Permit: 01-04-2025 to 31-03-2026"

	for _, dt := range []constants.DocumentType{constants.DocTypeNationalPermit, constants.DocTypeStatePermit} {
		f, err := Extract(dt, text)
		require.NoError(t, err)
		assert.Equal(t, "MH20EE1234", f.TruckNumber)
		assert.Equal(t, "NP/001", f.Number)
	}
}

func TestExtractUnknownType(t *testing.T) {
	t.Parallel()

	_, err := Extract(constants.DocumentType("passport"), "whatever")
	assert.Error(t, err)
}

func TestValidateFieldsPerType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		dt     constants.DocumentType
		fields parser.Fields
	}{
		{"rc", constants.DocTypeRC, parser.Fields{
			TruckNumber: "MH20EE1234",
			IssueDate:   parser.NewDate(2022, time.February, 14),
		}},
		{"insurance", constants.DocTypeInsurance, parser.Fields{
			TruckNumber: "MH20EE1234",
			Number:      "3001/XA/998877",
			IssueDate:   parser.NewDate(2025, time.May, 12),
			ExpiryDate:  parser.NewDate(2026, time.May, 11),
		}},
		{"fitness", constants.DocTypeFitness, parser.Fields{
			TruckNumber:           "MH20EE1234",
			Number:                "RCPT/889900",
			ApplicationNo:         "FIT202600123",
			MainExpiryDate:        parser.NewDate(2026, time.June, 15),
			NextInspectionDueDate: parser.NewDate(2026, time.June, 1),
		}},
		{"license", constants.DocTypeLicense, parser.Fields{
			LicenseNumber: "MH2020130012345",
			NameOnLicense: "Ravi Kumar Shah",
			ValidityNT:    parser.NewDate(2040, time.January, 9),
		}},
		{"empty fields are legitimate", constants.DocTypePUC, parser.Fields{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.NoError(t, ValidateFields(tt.dt, tt.fields))
		})
	}
}

// An RC result never carries license fields; the schema rejects the stray key.
func TestValidateFieldsRejectsCrossTypeFields(t *testing.T) {
	t.Parallel()

	err := ValidateFields(constants.DocTypeRC, parser.Fields{
		TruckNumber:   "MH20EE1234",
		NameOnLicense: "Ravi Kumar Shah",
	})
	assert.Error(t, err)
}
