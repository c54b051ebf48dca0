package trucks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fleetdocs/fleetdocs/constants"
	"github.com/fleetdocs/fleetdocs/gen/ent"
	"github.com/fleetdocs/fleetdocs/internal/common"
	"github.com/fleetdocs/fleetdocs/internal/entity"
	"github.com/fleetdocs/fleetdocs/internal/ingest"
	"github.com/fleetdocs/fleetdocs/internal/notify"
	"github.com/fleetdocs/fleetdocs/internal/parser"
	"github.com/fleetdocs/fleetdocs/internal/ratelimit"
	"github.com/fleetdocs/fleetdocs/internal/repository"
	"github.com/fleetdocs/fleetdocs/internal/storage"
)

// Service handles truck business logic: registration with the full document
// set, document slot updates, and EMI maintenance.
type Service struct {
	truckRepo      repository.TruckRepository
	companyRepo    repository.CompanyRepository
	assignmentRepo repository.AssignmentRepository
	orch           *ingest.Orchestrator
	store          storage.ObjectDeleter
	queue          *notify.Queue
	limiter        *ratelimit.Limiter
	logger         *slog.Logger
}

func NewService(
	truckRepo repository.TruckRepository,
	companyRepo repository.CompanyRepository,
	assignmentRepo repository.AssignmentRepository,
	orch *ingest.Orchestrator,
	store storage.ObjectDeleter,
	queue *notify.Queue,
	limiter *ratelimit.Limiter,
	logger *slog.Logger,
) *Service {
	return &Service{
		truckRepo:      truckRepo,
		companyRepo:    companyRepo,
		assignmentRepo: assignmentRepo,
		orch:           orch,
		store:          store,
		queue:          queue,
		limiter:        limiter,
		logger:         logger,
	}
}

// AddTruckRequest carries everything needed to register a truck: one file
// per required document slot plus the optional EMI schedule.
type AddTruckRequest struct {
	CompanyID   uuid.UUID
	TruckNumber string
	Documents   map[constants.DocumentType]ingest.File
	EMI         *entity.EMISchedule
}

// AddTruck verifies all seven vehicle documents and registers the truck.
// Any verification failure rejects the whole request; nothing is persisted.
func (s *Service) AddTruck(ctx context.Context, req AddTruckRequest) (*entity.Truck, error) {
	if s.limiter != nil && !s.limiter.Allow(req.CompanyID.String()) {
		return nil, status.Error(codes.ResourceExhausted, "too many registration attempts, try again later")
	}

	canonical := parser.CanonicalTruckNumber(req.TruckNumber)
	if canonical == "" {
		return nil, common.InvalidArgumentError("truck_number is required")
	}
	if exists, err := s.companyRepo.Exists(ctx, req.CompanyID); err != nil || !exists {
		return nil, common.NotFoundError("company not found")
	}
	if _, err := s.truckRepo.GetByNumber(ctx, canonical); err == nil {
		return nil, common.ConflictError(fmt.Sprintf("truck %s is already registered", canonical))
	} else if !ent.IsNotFound(err) {
		return nil, common.InternalErrorf("look up truck: %v", err)
	}

	set := ingest.TruckDocumentSet{
		TruckNumber: canonical,
		Uploads:     make(map[constants.DocumentType]ingest.Upload, len(req.Documents)),
		EMI:         req.EMI,
	}
	scope := "trucks/" + canonical
	for dt, f := range req.Documents {
		up, err := ingest.BuildUpload(scope, dt, f)
		if err != nil {
			return nil, common.InvalidArgumentErrorf("%s document: %v", dt, err)
		}
		set.Uploads[dt] = up
	}

	records, err := s.orch.IngestTruckDocuments(ctx, set)
	if err != nil {
		return nil, ingest.StatusError(err)
	}

	now := time.Now().UTC()
	docs := make(map[string]entity.DocumentRecord, len(records))
	for dt, rec := range records {
		docs[string(dt)] = entity.DocumentRecord{
			Fields:     rec.Fields,
			S3URL:      rec.S3URL,
			VerifiedAt: now,
		}
	}

	t, err := s.truckRepo.CreateTruck(ctx, &repository.CreateTruckRequest{
		CompanyID:   req.CompanyID,
		TruckNumber: canonical,
		Documents:   docs,
		EMI:         req.EMI,
	})
	if err != nil {
		return nil, common.InternalErrorf("create truck: %v", err)
	}

	s.logger.Info("truck registered", "truck_id", t.ID, "truck_number", t.TruckNumber)
	s.notify(ctx, "Truck registered", fmt.Sprintf("Truck %s passed document verification and was registered.", t.TruckNumber))
	return t, nil
}

// UpdateDocument re-verifies one document slot against the truck's
// registration number and replaces it. Updating the fitness certificate
// also refreshes the registration certificate's derived expiry.
func (s *Service) UpdateDocument(ctx context.Context, truckID uuid.UUID, dt constants.DocumentType, f ingest.File) (*entity.Truck, error) {
	if !constants.IsTruckDocument(dt) {
		return nil, common.InvalidArgumentErrorf("%s is not a vehicle document", dt)
	}
	t, err := s.truckRepo.GetByID(ctx, truckID)
	if err != nil {
		return nil, common.NotFoundError("truck not found")
	}

	up, err := ingest.BuildUpload("trucks/"+t.TruckNumber, dt, f)
	if err != nil {
		return nil, common.InvalidArgumentErrorf("%s document: %v", dt, err)
	}
	rec, err := s.orch.Ingest(ctx, dt, ingest.Identity{TruckNumber: t.TruckNumber}, up)
	if err != nil {
		return nil, ingest.StatusError(err)
	}

	now := time.Now().UTC()
	updated, err := s.truckRepo.SetDocument(ctx, truckID, string(dt), entity.DocumentRecord{
		Fields:     rec.Fields,
		S3URL:      rec.S3URL,
		VerifiedAt: now,
	})
	if err != nil {
		return nil, common.InternalErrorf("update %s document: %v", dt, err)
	}

	// The registration certificate's expiry is derived from the fitness
	// certificate, so a fitness update rewrites the rc slot too.
	if dt == constants.DocTypeFitness {
		if rc, ok := updated.Documents[string(constants.DocTypeRC)]; ok {
			rc.Fields.ExpiryDate = rec.Fields.MainExpiryDate
			updated, err = s.truckRepo.SetDocument(ctx, truckID, string(constants.DocTypeRC), rc)
			if err != nil {
				return nil, common.InternalErrorf("refresh rc expiry: %v", err)
			}
		}
	}

	s.logger.Info("truck document updated", "truck_id", truckID, "doc_type", dt)
	return updated, nil
}

// UpdateEMI replaces the truck's loan schedule. The schedule stays
// all-or-nothing; passing nil clears it.
func (s *Service) UpdateEMI(ctx context.Context, truckID uuid.UUID, emi *entity.EMISchedule) (*entity.Truck, error) {
	if !emi.Complete() {
		return nil, common.InvalidArgumentError("if an EMI schedule is supplied, all EMI fields are required")
	}
	t, err := s.truckRepo.SetEMI(ctx, truckID, emi)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, common.NotFoundError("truck not found")
		}
		return nil, common.InternalErrorf("update emi: %v", err)
	}
	return t, nil
}

// GetTruck returns one truck by id.
func (s *Service) GetTruck(ctx context.Context, id uuid.UUID) (*entity.Truck, error) {
	t, err := s.truckRepo.GetByID(ctx, id)
	if err != nil {
		return nil, common.NotFoundError("truck not found")
	}
	return t, nil
}

// ListTrucks returns every truck for a company.
func (s *Service) ListTrucks(ctx context.Context, companyID uuid.UUID) ([]*entity.Truck, error) {
	tlist, err := s.truckRepo.ListTrucks(ctx, companyID)
	if err != nil {
		return nil, common.InternalErrorf("list trucks: %v", err)
	}
	return tlist, nil
}

// DeleteTruck removes a truck that has no active assignment, then cleans
// up its stored document objects best-effort.
func (s *Service) DeleteTruck(ctx context.Context, id uuid.UUID) error {
	active, err := s.assignmentRepo.HasActiveForTruck(ctx, id)
	if err != nil {
		return common.InternalErrorf("check assignments: %v", err)
	}
	if active {
		return common.ConflictError("truck has an active assignment")
	}
	t, err := s.truckRepo.GetByID(ctx, id)
	if err != nil {
		return common.NotFoundError("truck not found")
	}
	if err := s.truckRepo.DeleteTruck(ctx, id); err != nil {
		if ent.IsNotFound(err) {
			return common.NotFoundError("truck not found")
		}
		return common.InternalErrorf("delete truck: %v", err)
	}
	if s.store != nil {
		for slot, rec := range t.Documents {
			if derr := s.store.Delete(ctx, rec.S3URL); derr != nil {
				s.logger.Warn("orphaned document object", "truck_id", id, "slot", slot, "error", derr)
			}
		}
	}
	s.logger.Info("truck deleted", "truck_id", id, "truck_number", t.TruckNumber)
	return nil
}

func (s *Service) notify(ctx context.Context, subject, body string) {
	if s.queue == nil {
		return
	}
	s.queue.Enqueue(ctx, notify.Message{Subject: subject, Body: body})
}
