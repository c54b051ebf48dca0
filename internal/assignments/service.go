package assignments

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fleetdocs/fleetdocs/constants"
	"github.com/fleetdocs/fleetdocs/internal/common"
	"github.com/fleetdocs/fleetdocs/internal/entity"
	"github.com/fleetdocs/fleetdocs/internal/repository"
)

// Service handles assignment business logic: pairing drivers with trucks
// and keeping at most one active assignment per resource.
type Service struct {
	assignmentRepo repository.AssignmentRepository
	truckRepo      repository.TruckRepository
	driverRepo     repository.DriverRepository
	logger         *slog.Logger
}

func NewService(
	assignmentRepo repository.AssignmentRepository,
	truckRepo repository.TruckRepository,
	driverRepo repository.DriverRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		assignmentRepo: assignmentRepo,
		truckRepo:      truckRepo,
		driverRepo:     driverRepo,
		logger:         logger,
	}
}

// CreateAssignment pairs a driver with a truck. Either resource already
// holding an active assignment is a conflict.
func (s *Service) CreateAssignment(ctx context.Context, companyID, truckID, driverID uuid.UUID) (*entity.Assignment, error) {
	t, err := s.truckRepo.GetByID(ctx, truckID)
	if err != nil {
		return nil, common.NotFoundError("truck not found")
	}
	d, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return nil, common.NotFoundError("driver not found")
	}
	if t.CompanyID != companyID || d.CompanyID != companyID {
		return nil, common.InvalidArgumentError("truck and driver must belong to the company")
	}

	if active, err := s.assignmentRepo.HasActiveForTruck(ctx, truckID); err != nil {
		return nil, common.InternalErrorf("check truck assignments: %v", err)
	} else if active {
		return nil, common.ConflictError("truck already has an active assignment")
	}
	if active, err := s.assignmentRepo.HasActiveForDriver(ctx, driverID); err != nil {
		return nil, common.InternalErrorf("check driver assignments: %v", err)
	} else if active {
		return nil, common.ConflictError("driver already has an active assignment")
	}

	a, err := s.assignmentRepo.CreateAssignment(ctx, companyID, truckID, driverID)
	if err != nil {
		return nil, common.InternalErrorf("create assignment: %v", err)
	}
	s.logger.Info("assignment created", "assignment_id", a.ID, "truck_id", truckID, "driver_id", driverID)
	return a, nil
}

// CompleteAssignment moves an active assignment to history.
func (s *Service) CompleteAssignment(ctx context.Context, id uuid.UUID) (*entity.Assignment, error) {
	a, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, common.NotFoundError("assignment not found")
	}
	if a.Status != string(constants.AssignmentActive) {
		return nil, common.ConflictError("assignment is not active")
	}
	completed, err := s.assignmentRepo.Complete(ctx, id)
	if err != nil {
		return nil, common.InternalErrorf("complete assignment: %v", err)
	}
	s.logger.Info("assignment completed", "assignment_id", id)
	return completed, nil
}

// ListAssignments returns a company's assignments in one status.
func (s *Service) ListAssignments(ctx context.Context, companyID uuid.UUID, status constants.AssignmentStatus) ([]*entity.Assignment, error) {
	alist, err := s.assignmentRepo.ListByStatus(ctx, companyID, status)
	if err != nil {
		return nil, common.InternalErrorf("list assignments: %v", err)
	}
	return alist, nil
}

// UnassignedResources returns the trucks and drivers without an active
// assignment, the pool available for new pairings.
func (s *Service) UnassignedResources(ctx context.Context, companyID uuid.UUID) ([]*entity.Truck, []*entity.Driver, error) {
	trucks, err := s.truckRepo.ListTrucks(ctx, companyID)
	if err != nil {
		return nil, nil, common.InternalErrorf("list trucks: %v", err)
	}
	drivers, err := s.driverRepo.ListDrivers(ctx, companyID)
	if err != nil {
		return nil, nil, common.InternalErrorf("list drivers: %v", err)
	}
	busyTrucks, err := s.assignmentRepo.ActiveTruckIDs(ctx, companyID)
	if err != nil {
		return nil, nil, common.InternalErrorf("list active trucks: %v", err)
	}
	busyDrivers, err := s.assignmentRepo.ActiveDriverIDs(ctx, companyID)
	if err != nil {
		return nil, nil, common.InternalErrorf("list active drivers: %v", err)
	}

	busyT := make(map[uuid.UUID]struct{}, len(busyTrucks))
	for _, id := range busyTrucks {
		busyT[id] = struct{}{}
	}
	busyD := make(map[uuid.UUID]struct{}, len(busyDrivers))
	for _, id := range busyDrivers {
		busyD[id] = struct{}{}
	}

	freeTrucks := trucks[:0]
	for _, t := range trucks {
		if _, busy := busyT[t.ID]; !busy {
			freeTrucks = append(freeTrucks, t)
		}
	}
	freeDrivers := drivers[:0]
	for _, d := range drivers {
		if _, busy := busyD[d.ID]; !busy {
			freeDrivers = append(freeDrivers, d)
		}
	}
	return freeTrucks, freeDrivers, nil
}
