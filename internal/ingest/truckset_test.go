package ingest

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetdocs/fleetdocs/constants"
	"github.com/fleetdocs/fleetdocs/internal/detect"
	"github.com/fleetdocs/fleetdocs/internal/entity"
	"github.com/fleetdocs/fleetdocs/internal/parser"
)

var truckDocTexts = map[constants.DocumentType]string{
	constants.DocTypeRC: `Certificate of Registration
Regn Number: MH-20-EE-1234
Date of Regn: 10-01-2019`,
	constants.DocTypePUC: `Pollution Under Control Certificate
Certificate SL. No: PUC99887766
Vehicle: MH20EE1234
Issued on 05-02-2026
Validity Upto: 04-08-2026`,
	constants.DocTypeTax: `Motor Vehicle Tax Receipt
Receipt No: TAX20260012
Vehicle No: MH20EE1234
Tax Period: 01-04-2026 to 30-06-2026`,
	constants.DocTypeInsurance: `Certificate of Insurance
Policy Number: POL/2026/9912
Vehicle No: MH20EE1234
Policy Start Date: 01-01-2026
Policy End Date: 31-12-2026`,
	constants.DocTypeNationalPermit: `National Permit
Permit No: NP/2025/4431
Vehicle: MH 20 EE 1234
Validity of Permit: 15-03-2025 to 14-03-2030`,
	constants.DocTypeStatePermit: `State Permit
Permit No: SP/2025/0912
Vehicle: MH20EE1234
Validity of Permit: 15-03-2025 to 14-03-2026`,
	constants.DocTypeFitness: fitnessDocText,
}

func truckTestSet(f *fakePipeline) TruckDocumentSet {
	uploads := make(map[constants.DocumentType]Upload, len(truckDocTexts))
	for dt, text := range truckDocTexts {
		key := "trucks/MH20EE1234/" + string(dt) + ".pdf"
		uploads[dt] = Upload{Key: key, Body: []byte("%PDF"), ContentType: "application/pdf"}
		f.succeedWith(key, text)
	}
	return TruckDocumentSet{TruckNumber: "MH 20 EE 1234", Uploads: uploads}
}

func floatPtr(v float64) *float64 { return &v }

func TestIngestTruckDocuments(t *testing.T) {
	t.Parallel()

	f := newFakePipeline()
	set := truckTestSet(f)
	o := testOrchestrator(f)

	records, err := o.IngestTruckDocuments(context.Background(), set)
	require.NoError(t, err)
	require.Len(t, records, len(constants.TruckDocumentTypes))

	for _, dt := range constants.TruckDocumentTypes {
		rec, ok := records[dt]
		require.True(t, ok, "missing record for %s", dt)
		assert.Equal(t, "MH20EE1234", rec.Fields.TruckNumber, "wrong plate on %s", dt)
		assert.NotEmpty(t, rec.S3URL, "missing url on %s", dt)
	}

	// The registration certificate inherits its expiry from the fitness
	// certificate's main expiry.
	rc := records[constants.DocTypeRC]
	require.NotNil(t, rc.Fields.ExpiryDate)
	assert.True(t, rc.Fields.ExpiryDate.Equal(time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)))

	tax := records[constants.DocTypeTax]
	require.NotNil(t, tax.Fields.IssueDate)
	assert.True(t, tax.Fields.IssueDate.Equal(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, tax.Fields.ExpiryDate)
	assert.True(t, tax.Fields.ExpiryDate.Equal(time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)))
}

func TestIngestTruckDocumentsSubmitsAllBeforePolling(t *testing.T) {
	t.Parallel()

	f := newFakePipeline()
	set := truckTestSet(f)
	o := testOrchestrator(f)

	_, err := o.IngestTruckDocuments(context.Background(), set)
	require.NoError(t, err)

	firstPoll := -1
	lastSubmit := -1
	for i, ev := range f.eventLog() {
		if strings.HasPrefix(ev, "poll:") && firstPoll < 0 {
			firstPoll = i
		}
		if strings.HasPrefix(ev, "submit:") {
			lastSubmit = i
		}
	}
	require.GreaterOrEqual(t, firstPoll, 0)
	assert.Less(t, lastSubmit, firstPoll, "every submission must precede the first poll")
}

func TestIngestTruckDocumentsMissingSlot(t *testing.T) {
	t.Parallel()

	f := newFakePipeline()
	set := truckTestSet(f)
	delete(set.Uploads, constants.DocTypeInsurance)
	o := testOrchestrator(f)

	_, err := o.IngestTruckDocuments(context.Background(), set)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insurance")
	assert.Empty(t, f.eventLog(), "no uploads before the set is validated")
}

func TestIngestTruckDocumentsIncompleteEMI(t *testing.T) {
	t.Parallel()

	f := newFakePipeline()
	set := truckTestSet(f)
	set.EMI = &entity.EMISchedule{
		TotalLoanAmount: floatPtr(1_200_000),
		EMIPerMonth:     floatPtr(45_000),
		// Start and end dates missing.
	}
	o := testOrchestrator(f)

	_, err := o.IngestTruckDocuments(context.Background(), set)
	require.ErrorIs(t, err, ErrIncompleteSchedule)
	assert.Empty(t, f.eventLog(), "schedule is validated before any upload")
}

func TestIngestTruckDocumentsCompleteEMI(t *testing.T) {
	t.Parallel()

	f := newFakePipeline()
	set := truckTestSet(f)
	set.EMI = &entity.EMISchedule{
		TotalLoanAmount: floatPtr(1_200_000),
		EMIPerMonth:     floatPtr(45_000),
		StartDate:       parser.NewDate(2025, time.January, 5),
		EndDate:         parser.NewDate(2028, time.January, 5),
	}
	o := testOrchestrator(f)

	_, err := o.IngestTruckDocuments(context.Background(), set)
	require.NoError(t, err)
}

func TestIngestTruckDocumentsMismatchAbortsSet(t *testing.T) {
	t.Parallel()

	f := newFakePipeline()
	set := truckTestSet(f)
	// The insurance document names a different vehicle.
	f.succeedWith("trucks/MH20EE1234/insurance.pdf", strings.ReplaceAll(
		truckDocTexts[constants.DocTypeInsurance], "MH20EE1234", "MH20EE1235"))
	o := testOrchestrator(f)

	records, err := o.IngestTruckDocuments(context.Background(), set)
	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, constants.DocTypeInsurance, mismatch.DocType)
	assert.Nil(t, records, "a failed slot yields no partial set")
}

func TestIngestTruckDocumentsFailedJobAbortsSet(t *testing.T) {
	t.Parallel()

	f := newFakePipeline()
	set := truckTestSet(f)
	f.scripts["trucks/MH20EE1234/puc.pdf"] = []detect.Result{{Status: constants.DetectionFailed}}
	o := testOrchestrator(f)

	_, err := o.IngestTruckDocuments(context.Background(), set)
	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, constants.DocTypePUC, serr.DocType)
}
