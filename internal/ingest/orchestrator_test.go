package ingest

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetdocs/fleetdocs/constants"
	"github.com/fleetdocs/fleetdocs/internal/detect"
)

// fakePipeline implements both storage.ObjectStore and detect.TextDetector,
// recording every call so tests can assert side-effect ordering.
type fakePipeline struct {
	mu        sync.Mutex
	events    []string
	putErr    error
	submitErr error
	pollErr   error
	scripts   map[string][]detect.Result // keyed by object key; last entry repeats
	polls     map[string]int
}

func newFakePipeline() *fakePipeline {
	return &fakePipeline{
		scripts: make(map[string][]detect.Result),
		polls:   make(map[string]int),
	}
}

func (f *fakePipeline) succeedWith(key, text string) {
	f.scripts[key] = []detect.Result{{
		Status: constants.DetectionSucceeded,
		Lines:  strings.Split(text, "\n"),
	}}
}

func (f *fakePipeline) Put(_ context.Context, key string, _ []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, "put:"+key)
	if f.putErr != nil {
		return "", f.putErr
	}
	return "https://bucket.s3.test/" + key, nil
}

func (f *fakePipeline) Submit(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, "submit:"+key)
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return "job:" + key, nil
}

func (f *fakePipeline) Poll(_ context.Context, jobID string) (detect.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := strings.TrimPrefix(jobID, "job:")
	f.events = append(f.events, "poll:"+key)
	if f.pollErr != nil {
		return detect.Result{}, f.pollErr
	}
	script := f.scripts[key]
	if len(script) == 0 {
		return detect.Result{Status: constants.DetectionInProgress}, nil
	}
	i := f.polls[key]
	f.polls[key]++
	if i >= len(script) {
		i = len(script) - 1
	}
	return script[i], nil
}

func (f *fakePipeline) eventLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.events...)
}

func testOrchestrator(f *fakePipeline) *Orchestrator {
	return NewOrchestrator(f, f, Config{PollInterval: time.Millisecond, MaxPolls: 30}, nil)
}

const fitnessDocText = `Certificate of Fitness
Application No: FIT202600123
Vehicle: MH20EE1234
Certificate will expire on 15-06-2026`

func TestIngestFitnessDocument(t *testing.T) {
	t.Parallel()

	f := newFakePipeline()
	f.succeedWith("docs/fitness.pdf", fitnessDocText)
	o := testOrchestrator(f)

	rec, err := o.Ingest(context.Background(), constants.DocTypeFitness,
		Identity{TruckNumber: "MH 20 EE 1234"},
		Upload{Key: "docs/fitness.pdf", Body: []byte("%PDF"), ContentType: "application/pdf"})
	require.NoError(t, err)

	assert.Equal(t, constants.DocTypeFitness, rec.Type)
	assert.Equal(t, "https://bucket.s3.test/docs/fitness.pdf", rec.S3URL)
	assert.Equal(t, "MH20EE1234", rec.Fields.TruckNumber)
	require.NotNil(t, rec.Fields.MainExpiryDate)
	assert.True(t, rec.Fields.MainExpiryDate.Equal(time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)))
}

func TestIngestLicenseSubstringMatch(t *testing.T) {
	t.Parallel()

	text := "DL No: MH2020130012345\nName: Kumar Shah\nIssue Date: 10-01-2020"
	f := newFakePipeline()
	f.succeedWith("docs/license.pdf", text)
	o := testOrchestrator(f)

	rec, err := o.Ingest(context.Background(), constants.DocTypeLicense,
		Identity{FirstName: "Ravi", LastName: "Kumar Shah"},
		Upload{Key: "docs/license.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "Kumar Shah", rec.Fields.NameOnLicense)
}

func TestIngestLicenseNameMismatch(t *testing.T) {
	t.Parallel()

	text := "DL No: MH2020130012345\nName: Kumar Shahid"
	f := newFakePipeline()
	f.succeedWith("docs/license.pdf", text)
	o := testOrchestrator(f)

	_, err := o.Ingest(context.Background(), constants.DocTypeLicense,
		Identity{FirstName: "Ravi", LastName: "Kumar Shah"},
		Upload{Key: "docs/license.pdf"})

	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "ravi kumar shah", mismatch.Claimed)
	assert.Equal(t, "kumar shahid", mismatch.Extracted)
}

func TestIngestTruckNumberMismatch(t *testing.T) {
	t.Parallel()

	f := newFakePipeline()
	f.succeedWith("docs/fitness.pdf", fitnessDocText)
	o := testOrchestrator(f)

	_, err := o.Ingest(context.Background(), constants.DocTypeFitness,
		Identity{TruckNumber: "MH20EE1235"},
		Upload{Key: "docs/fitness.pdf"})

	var mismatch *MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "MH20EE1235", mismatch.Claimed)
	assert.Equal(t, "MH20EE1234", mismatch.Extracted)
	assert.Contains(t, mismatch.Error(), "MH20EE1234")
	assert.Contains(t, mismatch.Error(), "MH20EE1235")
}

func TestIngestStorageFailureStopsBeforeSubmission(t *testing.T) {
	t.Parallel()

	f := newFakePipeline()
	f.putErr = errors.New("bucket unavailable")
	o := testOrchestrator(f)

	_, err := o.Ingest(context.Background(), constants.DocTypeRC,
		Identity{TruckNumber: "MH20EE1234"}, Upload{Key: "docs/rc.pdf"})

	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, []string{"put:docs/rc.pdf"}, f.eventLog())
}

func TestIngestSubmissionFailureKeepsUpload(t *testing.T) {
	t.Parallel()

	f := newFakePipeline()
	f.submitErr = errors.New("throttled")
	o := testOrchestrator(f)

	_, err := o.Ingest(context.Background(), constants.DocTypeRC,
		Identity{TruckNumber: "MH20EE1234"}, Upload{Key: "docs/rc.pdf"})

	var serr *SubmissionError
	require.ErrorAs(t, err, &serr)
	// The object was stored first and is not deleted on failure.
	assert.Equal(t, []string{"put:docs/rc.pdf", "submit:docs/rc.pdf"}, f.eventLog())
}

func TestIngestServiceFailure(t *testing.T) {
	t.Parallel()

	f := newFakePipeline()
	f.scripts["docs/rc.pdf"] = []detect.Result{{Status: constants.DetectionFailed}}
	o := testOrchestrator(f)

	_, err := o.Ingest(context.Background(), constants.DocTypeRC,
		Identity{TruckNumber: "MH20EE1234"}, Upload{Key: "docs/rc.pdf"})

	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
}

func TestIngestTimeoutAfterPollBudget(t *testing.T) {
	t.Parallel()

	f := newFakePipeline()
	// No script: every poll reports IN_PROGRESS.
	o := testOrchestrator(f)

	_, err := o.Ingest(context.Background(), constants.DocTypeRC,
		Identity{TruckNumber: "MH20EE1234"}, Upload{Key: "docs/rc.pdf"})

	var terr *TimeoutError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, 30, terr.Attempts)

	polls := 0
	for _, ev := range f.eventLog() {
		if strings.HasPrefix(ev, "poll:") {
			polls++
		}
	}
	assert.Equal(t, 30, polls)
}

func TestIngestStopsWhenCallerGone(t *testing.T) {
	t.Parallel()

	f := newFakePipeline()
	o := NewOrchestrator(f, f, Config{PollInterval: time.Minute, MaxPolls: 30}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := o.Ingest(ctx, constants.DocTypeRC,
		Identity{TruckNumber: "MH20EE1234"}, Upload{Key: "docs/rc.pdf"})
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 10*time.Second)
}

func TestIngestPollErrorSurfacesAsServiceFailure(t *testing.T) {
	t.Parallel()

	f := newFakePipeline()
	f.pollErr = detect.ErrJobNotFound
	o := testOrchestrator(f)

	_, err := o.Ingest(context.Background(), constants.DocTypeRC,
		Identity{TruckNumber: "MH20EE1234"}, Upload{Key: "docs/rc.pdf"})

	var serr *ServiceError
	require.ErrorAs(t, err, &serr)
	assert.ErrorIs(t, err, detect.ErrJobNotFound)
}
