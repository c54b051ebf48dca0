package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruckNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		claimed   string
		extracted string
		wantCanon string
		wantOK    bool
	}{
		{"exact after canonicalization", "MH 20 EE 1234", "MH20EE1234", "MH20EE1234", true},
		{"hyphens and case", "mh-20-ee-1234", "MH20EE1234", "MH20EE1234", true},
		{"different plate", "MH20EE1235", "MH20EE1234", "MH20EE1235", false},
		{"nothing extracted", "MH20EE1234", "", "MH20EE1234", false},
		{"empty claim", "", "MH20EE1234", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			canon, ok := TruckNumber(tt.claimed, tt.extracted)
			assert.Equal(t, tt.wantCanon, canon)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestLicenseName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		first     string
		last      string
		extracted string
		wantOK    bool
	}{
		{"exact", "Ravi", "Shah", "Ravi Shah", true},
		{"extracted drops middle name", "Ravi", "Kumar Shah", "Kumar Shah", true},
		{"case and whitespace", "Ravi", "Shah", "  RAVI SHAH  ", true},
		{"extracted extends beyond claim", "Ravi", "Kumar Shah", "Kumar Shahid", false},
		{"unrelated name", "Ravi", "Shah", "Mohan Verma", false},
		{"empty extraction never matches", "Ravi", "Shah", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			claimed, ok := LicenseName(tt.first, tt.last, tt.extracted)
			assert.NotEmpty(t, claimed)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
