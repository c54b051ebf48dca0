package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/fleetdocs/fleetdocs/constants"
	fleetpb "github.com/fleetdocs/fleetdocs/gen/proto/fleet/v1"
	"github.com/fleetdocs/fleetdocs/internal/common"
	"github.com/fleetdocs/fleetdocs/internal/ingest"
)

type IngestionServer struct {
	fleetpb.UnimplementedIngestionServiceServer
	orch   *ingest.Orchestrator
	logger *slog.Logger
}

func NewIngestionServer(orch *ingest.Orchestrator, logger *slog.Logger) *IngestionServer {
	return &IngestionServer{
		orch:   orch,
		logger: logger,
	}
}

// ExtractDocument runs one file through the full pipeline and returns the
// verified fields without persisting anything. Used to preview a document
// before registering the truck or driver it belongs to.
func (s *IngestionServer) ExtractDocument(ctx context.Context, req *fleetpb.ExtractDocumentRequest) (*fleetpb.ExtractDocumentResponse, error) {
	dt, ok := constants.ParseDocumentType(req.GetDocType())
	if !ok {
		return nil, common.InvalidArgumentErrorf("unknown document type %q", req.GetDocType())
	}
	file := req.GetFile()
	if file == nil {
		return nil, common.InvalidArgumentError("file is required")
	}

	id := ingest.Identity{
		TruckNumber: strings.TrimSpace(req.GetTruckNumber()),
		FirstName:   strings.TrimSpace(req.GetFirstName()),
		LastName:    strings.TrimSpace(req.GetLastName()),
	}
	if constants.IsTruckDocument(dt) && id.TruckNumber == "" {
		return nil, common.InvalidArgumentError("truck_number is required for vehicle documents")
	}
	if dt == constants.DocTypeLicense && id.FirstName == "" && id.LastName == "" {
		return nil, common.InvalidArgumentError("first_name or last_name is required for a license")
	}

	up, err := ingest.BuildUpload("extract", dt, ingest.File{Filename: file.GetFilename(), Content: file.GetContent()})
	if err != nil {
		return nil, common.InvalidArgumentErrorf("%s document: %v", dt, err)
	}

	s.logger.Info("document extraction requested", "doc_type", dt, "filename", file.GetFilename())
	rec, err := s.orch.Ingest(ctx, dt, id, up)
	if err != nil {
		return nil, ingest.StatusError(err)
	}

	fields, err := json.Marshal(rec.Fields)
	if err != nil {
		return nil, common.InternalErrorf("encode fields: %v", err)
	}
	return &fleetpb.ExtractDocumentResponse{
		DocType:    string(dt),
		FieldsJson: string(fields),
		S3Url:      rec.S3URL,
	}, nil
}
