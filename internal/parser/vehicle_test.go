package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rcText = `FORM 23
Registration Certificate
Regn Number: MH 20 EE 1234
Date of Regn: 14-02-2022
Chassis No: MBLHA10EY9HK12345`

func TestExtractRC(t *testing.T) {
	t.Parallel()

	f := ExtractRC(rcText)
	assert.Equal(t, "MH20EE1234", f.TruckNumber)
	require.NotNil(t, f.IssueDate)
	assert.True(t, f.IssueDate.Equal(time.Date(2022, time.February, 14, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, f.ExpiryDate)
}

func TestExtractPUC(t *testing.T) {
	t.Parallel()

	text := `Pollution Under Control Certificate
Certificate SL. No : PUC12345678
Regn No: MH20EE1234
Test Date: 01-01-2025
Validity Upto: 30-06-2025`

	f := ExtractPUC(text)
	assert.Equal(t, "MH20EE1234", f.TruckNumber)
	assert.Equal(t, "PUC12345678", f.Number)
	require.NotNil(t, f.IssueDate)
	assert.True(t, f.IssueDate.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, f.ExpiryDate)
	assert.True(t, f.ExpiryDate.Equal(time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)))
}

// The first parseable date in the document claims issue_date; later dates
// must not overwrite it.
func TestExtractPUCIssueDateSticks(t *testing.T) {
	t.Parallel()

	text := "Regn No: MH20EE1234\nTested 05-03-2025\nAnother 09-03-2025"
	f := ExtractPUC(text)
	require.NotNil(t, f.IssueDate)
	assert.True(t, f.IssueDate.Equal(time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)))
}

func TestExtractTax(t *testing.T) {
	t.Parallel()

	text := `Motor Vehicle Tax Receipt
Receipt No: TAX/2025/00991
Vehicle: MH20EE1234
Period: 01-04-2025 to 31-03-2026`

	f := ExtractTax(text)
	assert.Equal(t, "MH20EE1234", f.TruckNumber)
	assert.Equal(t, "TAX/2025/00991", f.Number)
	require.NotNil(t, f.IssueDate)
	require.NotNil(t, f.ExpiryDate)
	assert.True(t, f.IssueDate.Equal(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, f.ExpiryDate.Equal(time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)))
}

func TestExtractTaxPeriodNeedsBothDates(t *testing.T) {
	t.Parallel()

	f := ExtractTax("Vehicle: MH20EE1234\nPeriod: 01-04-2025 onwards")
	assert.Nil(t, f.IssueDate)
	assert.Nil(t, f.ExpiryDate)
}

func TestExtractInsurance(t *testing.T) {
	t.Parallel()

	text := `Certificate of Insurance
Policy Number: 3001/XA/998877
Registration Mark: MH-20-EE-1234
Policy Start Date: 12/05/2025
Policy End Date: 11/05/2026`

	f := ExtractInsurance(text)
	assert.Equal(t, "MH20EE1234", f.TruckNumber)
	assert.Equal(t, "3001/XA/998877", f.Number)
	require.NotNil(t, f.IssueDate)
	require.NotNil(t, f.ExpiryDate)
	assert.True(t, f.IssueDate.Equal(time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC)))
	assert.True(t, f.ExpiryDate.Equal(time.Date(2026, time.May, 11, 0, 0, 0, 0, time.UTC)))
}

func TestExtractPermit(t *testing.T) {
	t.Parallel()

	text := `National Permit
Permit No: NP/MH/2025/5566
Vehicle No: MH20EE1234
Validity of Permit: 01-Apr-2025 to 31-Mar-2030`

	f := ExtractPermit(text)
	assert.Equal(t, "MH20EE1234", f.TruckNumber)
	assert.Equal(t, "NP/MH/2025/5566", f.Number)
	require.NotNil(t, f.IssueDate)
	require.NotNil(t, f.ExpiryDate)
	assert.True(t, f.IssueDate.Equal(time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, f.ExpiryDate.Equal(time.Date(2030, time.March, 31, 0, 0, 0, 0, time.UTC)))
}

const fitnessText = `Certificate of Fitness
Application No: FIT202600123
Inspection/Issuance Fee Receipt No: RCPT/889900
Vehicle: MH20EE1234
Inspected/Issued Date: 10-06-2025
Certificate will expire on 15-06-2026
Next Inspection due date: 01-06-2026`

func TestExtractFitness(t *testing.T) {
	t.Parallel()

	f := ExtractFitness(fitnessText)
	assert.Equal(t, "MH20EE1234", f.TruckNumber)
	assert.Equal(t, "RCPT/889900", f.Number)
	assert.Equal(t, "FIT202600123", f.ApplicationNo)
	require.NotNil(t, f.IssueDate)
	assert.True(t, f.IssueDate.Equal(time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, f.MainExpiryDate)
	assert.True(t, f.MainExpiryDate.Equal(time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, f.NextInspectionDueDate)
	assert.True(t, f.NextInspectionDueDate.Equal(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)))
}

// Running an extractor twice over identical text yields identical fields.
func TestExtractIdempotent(t *testing.T) {
	t.Parallel()

	first := ExtractFitness(fitnessText)
	second := ExtractFitness(fitnessText)
	assert.Equal(t, first, second)
}

func TestExtractEmptyText(t *testing.T) {
	t.Parallel()

	for name, fn := range map[string]func(string) Fields{
		"rc":        ExtractRC,
		"puc":       ExtractPUC,
		"tax":       ExtractTax,
		"insurance": ExtractInsurance,
		"permit":    ExtractPermit,
		"fitness":   ExtractFitness,
	} {
		t.Run(name, func(t *testing.T) {
			f := fn("")
			assert.Empty(t, f.TruckNumber)
			assert.Nil(t, f.IssueDate)
			assert.Nil(t, f.ExpiryDate)
		})
	}
}
