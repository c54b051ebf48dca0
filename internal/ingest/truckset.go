package ingest

import (
	"context"
	"fmt"

	"github.com/fleetdocs/fleetdocs/constants"
	"github.com/fleetdocs/fleetdocs/internal/entity"
)

// TruckDocumentSet is everything needed to ingest a new truck's documents:
// the claimed registration number, one upload per required slot, and the
// optional EMI schedule.
type TruckDocumentSet struct {
	TruckNumber string
	Uploads     map[constants.DocumentType]Upload
	EMI         *entity.EMISchedule
}

// IngestTruckDocuments runs the seven required vehicle documents through the
// pipeline. All uploads and job submissions happen up front so the external
// service works on every document in parallel; polling, extraction and
// verification then proceed one slot at a time in a fixed order. The first
// failure aborts the whole set — the caller creates no truck record.
//
// After all documents are extracted, the fitness certificate's main expiry
// is copied into the registration certificate's expiry slot: the physical
// RC carries no expiry of its own.
func (o *Orchestrator) IngestTruckDocuments(ctx context.Context, set TruckDocumentSet) (map[constants.DocumentType]Record, error) {
	if !set.EMI.Complete() {
		return nil, ErrIncompleteSchedule
	}
	for _, dt := range constants.TruckDocumentTypes {
		if _, ok := set.Uploads[dt]; !ok {
			return nil, fmt.Errorf("missing %s document upload", dt)
		}
	}

	type pending struct {
		url   string
		jobID string
	}
	jobs := make(map[constants.DocumentType]pending, len(constants.TruckDocumentTypes))
	for _, dt := range constants.TruckDocumentTypes {
		url, jobID, err := o.submit(ctx, dt, set.Uploads[dt])
		if err != nil {
			return nil, err
		}
		jobs[dt] = pending{url: url, jobID: jobID}
	}

	records := make(map[constants.DocumentType]Record, len(jobs))
	for _, dt := range constants.TruckDocumentTypes {
		text, err := o.awaitText(ctx, dt, jobs[dt].jobID)
		if err != nil {
			return nil, err
		}
		fields, err := o.extractAndVerify(dt, text, Identity{TruckNumber: set.TruckNumber})
		if err != nil {
			return nil, err
		}
		records[dt] = Record{Type: dt, Fields: fields, S3URL: jobs[dt].url}
	}

	rc := records[constants.DocTypeRC]
	rc.Fields.ExpiryDate = records[constants.DocTypeFitness].Fields.MainExpiryDate
	records[constants.DocTypeRC] = rc

	o.logger.Info("truck document set verified", "truck_number", set.TruckNumber, "documents", len(records))
	return records, nil
}
