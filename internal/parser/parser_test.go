package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindTruckNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"plain", "Registration No: MH20EE1234", "MH20EE1234"},
		{"lowercase with separators", "Veh No: mh-20 ee 1234 (private)", "MH20EE1234"},
		{"single letter series", "KA05M4321 is the vehicle", "KA05M4321"},
		{"embedded in noise", "xx MH 12 AB 9999 yy", "MH12AB9999"},
		{"first match wins", "MH20EE1234 then DL01CA5678", "MH20EE1234"},
		{"too few digits", "MH20EE123", ""},
		{"no plate", "no vehicle here", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FindTruckNumber(tt.text))
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want *Date
	}{
		{"dashed numeric", "issued 15-06-2026 ok", NewDate(2026, time.June, 15)},
		{"slashed numeric", "issued 15/06/2026 ok", NewDate(2026, time.June, 15)},
		{"month abbreviation", "valid from 01-Jan-2025", NewDate(2025, time.January, 1)},
		{"lowercase month", "valid from 01-jan-2025", NewDate(2025, time.January, 1)},
		{"impossible numeric date", "on 31-02-2024", nil},
		{"bad month abbreviation", "on 01-Xyz-2024", nil},
		{"no date", "nothing here", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ParseDate(tt.text)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(got.Time), "want %v got %v", tt.want, got)
		})
	}
}

// A line matching the numeric pattern that parses under neither numeric
// format is "no date", even when a month-style token follows on the same
// line: the numeric branch is decided first.
func TestParseDateFormatOrder(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ParseDate("99-99-2024 or 05-Mar-2024"))

	got := ParseDate("12/05/2024")
	require.NotNil(t, got)
	assert.True(t, got.Equal(time.Date(2024, time.May, 12, 0, 0, 0, 0, time.UTC)))
}

func TestParsePeriod(t *testing.T) {
	t.Parallel()

	t.Run("two numeric tokens", func(t *testing.T) {
		t.Parallel()
		start, end := ParsePeriod("Period: 01-04-2025 to 31-03-2026")
		require.NotNil(t, start)
		require.NotNil(t, end)
		assert.True(t, start.Equal(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, end.Equal(time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("mixed formats", func(t *testing.T) {
		t.Parallel()
		start, end := ParsePeriod("valid 01-Apr-2025 until 31/03/2026")
		require.NotNil(t, start)
		require.NotNil(t, end)
		assert.True(t, start.Equal(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, end.Equal(time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("single token yields nothing", func(t *testing.T) {
		t.Parallel()
		start, end := ParsePeriod("Period: 01-04-2025 onwards")
		assert.Nil(t, start)
		assert.Nil(t, end)
	})

	t.Run("no tokens", func(t *testing.T) {
		t.Parallel()
		start, end := ParsePeriod("Period: yearly")
		assert.Nil(t, start)
		assert.Nil(t, end)
	})
}

func TestDateJSONRoundTrip(t *testing.T) {
	t.Parallel()

	d := NewDate(2026, time.June, 15)
	b, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2026-06-15"`, string(b))

	var back Date
	require.NoError(t, back.UnmarshalJSON(b))
	assert.True(t, back.Equal(d.Time))
}
