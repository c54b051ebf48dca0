package drivers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fleetdocs/fleetdocs/constants"
	"github.com/fleetdocs/fleetdocs/gen/ent"
	"github.com/fleetdocs/fleetdocs/internal/common"
	"github.com/fleetdocs/fleetdocs/internal/entity"
	"github.com/fleetdocs/fleetdocs/internal/ingest"
	"github.com/fleetdocs/fleetdocs/internal/notify"
	"github.com/fleetdocs/fleetdocs/internal/repository"
	"github.com/fleetdocs/fleetdocs/internal/storage"
)

// Service handles driver business logic: onboarding with license
// verification and contact/license maintenance.
type Service struct {
	driverRepo     repository.DriverRepository
	companyRepo    repository.CompanyRepository
	assignmentRepo repository.AssignmentRepository
	orch           *ingest.Orchestrator
	store          storage.ObjectDeleter
	queue          *notify.Queue
	logger         *slog.Logger
}

func NewService(
	driverRepo repository.DriverRepository,
	companyRepo repository.CompanyRepository,
	assignmentRepo repository.AssignmentRepository,
	orch *ingest.Orchestrator,
	store storage.ObjectDeleter,
	queue *notify.Queue,
	logger *slog.Logger,
) *Service {
	return &Service{
		driverRepo:     driverRepo,
		companyRepo:    companyRepo,
		assignmentRepo: assignmentRepo,
		orch:           orch,
		store:          store,
		queue:          queue,
		logger:         logger,
	}
}

// AddDriverRequest carries driver onboarding parameters. The license file
// is verified against the claimed name before anything is stored.
type AddDriverRequest struct {
	CompanyID uuid.UUID
	FirstName string
	LastName  string
	Phone     string
	License   ingest.File
}

// AddDriver verifies the driving license and onboards the driver.
func (s *Service) AddDriver(ctx context.Context, req AddDriverRequest) (*entity.Driver, error) {
	v := common.NewValidator().
		Field("first_name", req.FirstName, common.Required).
		Field("last_name", req.LastName, common.Required).
		Field("phone", req.Phone, common.Required, common.PhoneNumber)
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}
	if exists, err := s.companyRepo.Exists(ctx, req.CompanyID); err != nil || !exists {
		return nil, common.NotFoundError("company not found")
	}

	first := strings.TrimSpace(req.FirstName)
	last := strings.TrimSpace(req.LastName)
	rec, err := s.verifyLicense(ctx, first, last, req.License)
	if err != nil {
		return nil, err
	}

	d, err := s.driverRepo.CreateDriver(ctx, &repository.CreateDriverRequest{
		CompanyID: req.CompanyID,
		FirstName: first,
		LastName:  last,
		Phone:     req.Phone,
		License:   rec,
	})
	if err != nil {
		return nil, common.InternalErrorf("create driver: %v", err)
	}

	s.logger.Info("driver onboarded", "driver_id", d.ID, "license_number", rec.Fields.LicenseNumber)
	if s.queue != nil {
		s.queue.Enqueue(ctx, notify.Message{
			Subject: "Driver onboarded",
			Body:    fmt.Sprintf("Driver %s %s passed license verification and was onboarded.", first, last),
		})
	}
	return d, nil
}

// UpdatePhone changes the driver's contact number.
func (s *Service) UpdatePhone(ctx context.Context, driverID uuid.UUID, phone string) (*entity.Driver, error) {
	v := common.NewValidator().Field("phone", phone, common.Required, common.PhoneNumber)
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}
	d, err := s.driverRepo.SetPhone(ctx, driverID, phone)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, common.NotFoundError("driver not found")
		}
		return nil, common.InternalErrorf("update phone: %v", err)
	}
	return d, nil
}

// UpdateLicense re-verifies a new license file against the driver's stored
// name and replaces the license record.
func (s *Service) UpdateLicense(ctx context.Context, driverID uuid.UUID, f ingest.File) (*entity.Driver, error) {
	d, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, common.NotFoundError("driver not found")
	}
	rec, err := s.verifyLicense(ctx, d.FirstName, d.LastName, f)
	if err != nil {
		return nil, err
	}
	updated, err := s.driverRepo.SetLicense(ctx, driverID, *rec)
	if err != nil {
		return nil, common.InternalErrorf("update license: %v", err)
	}
	s.logger.Info("driver license updated", "driver_id", driverID, "license_number", rec.Fields.LicenseNumber)
	return updated, nil
}

// GetDriver returns one driver by id.
func (s *Service) GetDriver(ctx context.Context, id uuid.UUID) (*entity.Driver, error) {
	d, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		return nil, common.NotFoundError("driver not found")
	}
	return d, nil
}

// ListDrivers returns every driver for a company.
func (s *Service) ListDrivers(ctx context.Context, companyID uuid.UUID) ([]*entity.Driver, error) {
	dlist, err := s.driverRepo.ListDrivers(ctx, companyID)
	if err != nil {
		return nil, common.InternalErrorf("list drivers: %v", err)
	}
	return dlist, nil
}

// DeleteDriver removes a driver who has no active assignment, then cleans
// up the stored license object best-effort.
func (s *Service) DeleteDriver(ctx context.Context, id uuid.UUID) error {
	active, err := s.assignmentRepo.HasActiveForDriver(ctx, id)
	if err != nil {
		return common.InternalErrorf("check assignments: %v", err)
	}
	if active {
		return common.ConflictError("driver has an active assignment")
	}
	d, err := s.driverRepo.GetByID(ctx, id)
	if err != nil {
		return common.NotFoundError("driver not found")
	}
	if err := s.driverRepo.DeleteDriver(ctx, id); err != nil {
		if ent.IsNotFound(err) {
			return common.NotFoundError("driver not found")
		}
		return common.InternalErrorf("delete driver: %v", err)
	}
	if s.store != nil && d.License != nil {
		if derr := s.store.Delete(ctx, d.License.S3URL); derr != nil {
			s.logger.Warn("orphaned license object", "driver_id", id, "error", derr)
		}
	}
	s.logger.Info("driver deleted", "driver_id", id)
	return nil
}

func (s *Service) verifyLicense(ctx context.Context, first, last string, f ingest.File) (*entity.DocumentRecord, error) {
	scope := "drivers/" + strings.ToLower(first+"-"+last)
	up, err := ingest.BuildUpload(scope, constants.DocTypeLicense, f)
	if err != nil {
		return nil, common.InvalidArgumentErrorf("license document: %v", err)
	}
	rec, err := s.orch.Ingest(ctx, constants.DocTypeLicense, ingest.Identity{FirstName: first, LastName: last}, up)
	if err != nil {
		return nil, ingest.StatusError(err)
	}
	return &entity.DocumentRecord{
		Fields:     rec.Fields,
		S3URL:      rec.S3URL,
		VerifiedAt: time.Now().UTC(),
	}, nil
}
