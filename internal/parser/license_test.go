package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLicense(t *testing.T) {
	t.Parallel()

	text := `Indian Union Driving Licence
DL No: MH2020130012345
Name: Ravi Kumar Shah
Father Name: Mohan Shah
Issue Date: 10-01-2020
Validity (NT): 09-01-2040
Validity (TR): 09-01-2030`

	f := ExtractLicense(text)
	assert.Equal(t, "MH2020130012345", f.LicenseNumber)
	assert.Equal(t, "Ravi Kumar Shah", f.NameOnLicense)
	require.NotNil(t, f.IssueDate)
	assert.True(t, f.IssueDate.Equal(time.Date(2020, time.January, 10, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, f.ValidityNT)
	assert.True(t, f.ValidityNT.Equal(time.Date(2040, time.January, 9, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, f.ValidityTR)
	assert.True(t, f.ValidityTR.Equal(time.Date(2030, time.January, 9, 0, 0, 0, 0, time.UTC)))
}

func TestExtractLicenseNameVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"after colon", "Name: Ravi Shah", "Ravi Shah"},
		{"on following line", "Name\nRavi Shah", "Ravi Shah"},
		{"surname comma given", "Name: Shah, Ravi", "Ravi Shah"},
		{"father line ignored", "Father Name: Mohan Shah", ""},
		{"label with nothing after", "Name:", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := ExtractLicense(tt.text)
			assert.Equal(t, tt.want, f.NameOnLicense)
		})
	}
}

func TestExtractLicenseNumber(t *testing.T) {
	t.Parallel()

	t.Run("fourteen digit body", func(t *testing.T) {
		t.Parallel()
		f := ExtractLicense("DL No MH20201300123456 issued")
		assert.Equal(t, "MH20201300123456", f.LicenseNumber)
	})

	t.Run("too short", func(t *testing.T) {
		t.Parallel()
		f := ExtractLicense("DL No MH2020130012 issued")
		assert.Empty(t, f.LicenseNumber)
	})

	t.Run("doi alias sets issue date", func(t *testing.T) {
		t.Parallel()
		f := ExtractLicense("DOI: 05-05-2018")
		require.NotNil(t, f.IssueDate)
		assert.True(t, f.IssueDate.Equal(time.Date(2018, time.May, 5, 0, 0, 0, 0, time.UTC)))
	})
}
