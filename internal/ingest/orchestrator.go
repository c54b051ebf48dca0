// Package ingest orchestrates the document pipeline: upload to durable
// storage, submit to the external text-detection service, poll to a terminal
// state, run the registered field extractor, and verify the extracted
// identity against the claimed one.
package ingest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fleetdocs/fleetdocs/constants"
	"github.com/fleetdocs/fleetdocs/internal/detect"
	"github.com/fleetdocs/fleetdocs/internal/parser"
	"github.com/fleetdocs/fleetdocs/internal/registry"
	"github.com/fleetdocs/fleetdocs/internal/storage"
	"github.com/fleetdocs/fleetdocs/internal/verify"
)

// Config bounds the detection poll loop. The defaults give a ceiling of
// roughly a minute per document.
type Config struct {
	PollInterval time.Duration // default 2s
	MaxPolls     int           // default 30
}

// Upload is one file handed to the pipeline.
type Upload struct {
	Key         string
	Body        []byte
	ContentType string
}

// Identity is what the caller claims the document belongs to: a registration
// number for vehicle documents, a driver's name for a license.
type Identity struct {
	TruckNumber string
	FirstName   string
	LastName    string
}

// Record is an accepted document: the extracted fields plus the storage URL
// of the original file. Only verified documents become records.
type Record struct {
	Type   constants.DocumentType
	Fields parser.Fields
	S3URL  string
}

// Orchestrator drives single-document ingestion. Polling blocks the calling
// task but watches ctx so an abandoned request stops polling server-side.
type Orchestrator struct {
	store    storage.ObjectStore
	detector detect.TextDetector
	cfg      Config
	logger   *slog.Logger
}

func NewOrchestrator(store storage.ObjectStore, detector detect.TextDetector, cfg Config, logger *slog.Logger) *Orchestrator {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.MaxPolls <= 0 {
		cfg.MaxPolls = 30
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{store: store, detector: detector, cfg: cfg, logger: logger}
}

// Ingest runs the full pipeline for one document and returns the verified
// record. The upload always happens before the detection job is submitted,
// so a failed or timed-out job never loses the artifact; orphaned objects
// are left in storage for manual recovery.
func (o *Orchestrator) Ingest(ctx context.Context, dt constants.DocumentType, id Identity, up Upload) (Record, error) {
	url, jobID, err := o.submit(ctx, dt, up)
	if err != nil {
		return Record{}, err
	}
	text, err := o.awaitText(ctx, dt, jobID)
	if err != nil {
		return Record{}, err
	}
	fields, err := o.extractAndVerify(dt, text, id)
	if err != nil {
		return Record{}, err
	}
	return Record{Type: dt, Fields: fields, S3URL: url}, nil
}

// submit stores the file and starts its detection job.
func (o *Orchestrator) submit(ctx context.Context, dt constants.DocumentType, up Upload) (url, jobID string, err error) {
	url, perr := o.store.Put(ctx, up.Key, up.Body, up.ContentType)
	if perr != nil {
		return "", "", &StorageError{DocType: dt, Err: perr}
	}
	jobID, serr := o.detector.Submit(ctx, up.Key)
	if serr != nil {
		return "", "", &SubmissionError{DocType: dt, Err: serr}
	}
	o.logger.Info("document submitted for detection", "doc_type", dt, "key", up.Key, "job_id", jobID)
	return url, jobID, nil
}

// awaitText polls the detection job until it succeeds, fails, or the poll
// budget is exhausted. Between polls it waits out the interval, or stops
// early when the caller's context is gone.
func (o *Orchestrator) awaitText(ctx context.Context, dt constants.DocumentType, jobID string) (string, error) {
	for attempt := 1; attempt <= o.cfg.MaxPolls; attempt++ {
		res, err := o.detector.Poll(ctx, jobID)
		if err != nil {
			return "", &ServiceError{DocType: dt, Err: err}
		}
		switch res.Status {
		case constants.DetectionSucceeded:
			o.logger.Info("detection succeeded", "doc_type", dt, "job_id", jobID, "lines", len(res.Lines), "polls", attempt)
			return strings.Join(res.Lines, "\n"), nil
		case constants.DetectionFailed:
			return "", &ServiceError{DocType: dt}
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(o.cfg.PollInterval):
		}
	}
	return "", &TimeoutError{DocType: dt, Attempts: o.cfg.MaxPolls}
}

// extractAndVerify runs the registered extractor and checks the extracted
// identity against the claimed one.
func (o *Orchestrator) extractAndVerify(dt constants.DocumentType, text string, id Identity) (parser.Fields, error) {
	fields, err := registry.Extract(dt, text)
	if err != nil {
		return parser.Fields{}, err
	}
	// Shape check against the registered result schema; a failure here is an
	// extractor bug, not a bad document.
	if verr := registry.ValidateFields(dt, fields); verr != nil {
		o.logger.Warn("extracted fields do not match result schema", "doc_type", dt, "error", verr)
	}

	if constants.IsTruckDocument(dt) {
		claimed, ok := verify.TruckNumber(id.TruckNumber, fields.TruckNumber)
		if !ok {
			return parser.Fields{}, &MismatchError{DocType: dt, Claimed: claimed, Extracted: fields.TruckNumber}
		}
		return fields, nil
	}

	claimed, ok := verify.LicenseName(id.FirstName, id.LastName, fields.NameOnLicense)
	if !ok {
		return parser.Fields{}, &MismatchError{DocType: dt, Claimed: claimed, Extracted: strings.ToLower(strings.TrimSpace(fields.NameOnLicense))}
	}
	return fields, nil
}
