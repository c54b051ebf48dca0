package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fleetdocs/fleetdocs/constants"
	"github.com/fleetdocs/fleetdocs/gen/ent"
	"github.com/fleetdocs/fleetdocs/gen/ent/assignment"
	"github.com/fleetdocs/fleetdocs/internal/entity"
	"github.com/fleetdocs/fleetdocs/internal/utils"
)

type AssignmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Assignment, error)
	CreateAssignment(ctx context.Context, companyID, truckID, driverID uuid.UUID) (*entity.Assignment, error)
	ListByStatus(ctx context.Context, companyID uuid.UUID, status constants.AssignmentStatus) ([]*entity.Assignment, error)
	HasActiveForTruck(ctx context.Context, truckID uuid.UUID) (bool, error)
	HasActiveForDriver(ctx context.Context, driverID uuid.UUID) (bool, error)
	ActiveTruckIDs(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error)
	ActiveDriverIDs(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error)
	Complete(ctx context.Context, id uuid.UUID) (*entity.Assignment, error)
	ArchiveActiveBefore(ctx context.Context, cutoff time.Time) (int, error)
	PurgeHistoryBefore(ctx context.Context, cutoff time.Time) (int, error)
}

type assignmentRepository struct {
	client *ent.Client
	logger *slog.Logger
}

func NewAssignmentRepository(client *ent.Client, logger *slog.Logger) AssignmentRepository {
	return &assignmentRepository{
		client: client,
		logger: logger,
	}
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Assignment, error) {
	a, err := r.client.Assignment.Query().Where(assignment.ID(id)).Only(ctx)
	if err != nil {
		return nil, err
	}
	return utils.ToAssignment(a), nil
}

func (r *assignmentRepository) CreateAssignment(ctx context.Context, companyID, truckID, driverID uuid.UUID) (*entity.Assignment, error) {
	a, err := r.client.Assignment.Create().
		SetCompanyID(companyID).
		SetTruckID(truckID).
		SetDriverID(driverID).
		SetStatus(string(constants.AssignmentActive)).
		Save(ctx)
	if err != nil {
		r.logger.Error("failed to create assignment", "truck_id", truckID, "driver_id", driverID, "error", err)
		return nil, err
	}
	return utils.ToAssignment(a), nil
}

func (r *assignmentRepository) ListByStatus(ctx context.Context, companyID uuid.UUID, status constants.AssignmentStatus) ([]*entity.Assignment, error) {
	alist, err := r.client.Assignment.Query().
		Where(
			assignment.CompanyID(companyID),
			assignment.Status(string(status)),
		).
		Order(assignment.ByAssignedAt()).
		All(ctx)
	if err != nil {
		r.logger.Error("failed to list assignments", "company_id", companyID, "status", status, "error", err)
		return nil, err
	}
	result := make([]*entity.Assignment, len(alist))
	for i, a := range alist {
		result[i] = utils.ToAssignment(a)
	}
	return result, nil
}

func (r *assignmentRepository) HasActiveForTruck(ctx context.Context, truckID uuid.UUID) (bool, error) {
	return r.client.Assignment.Query().
		Where(
			assignment.TruckID(truckID),
			assignment.Status(string(constants.AssignmentActive)),
		).
		Exist(ctx)
}

func (r *assignmentRepository) HasActiveForDriver(ctx context.Context, driverID uuid.UUID) (bool, error) {
	return r.client.Assignment.Query().
		Where(
			assignment.DriverID(driverID),
			assignment.Status(string(constants.AssignmentActive)),
		).
		Exist(ctx)
}

func (r *assignmentRepository) ActiveTruckIDs(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.client.Assignment.Query().
		Where(
			assignment.CompanyID(companyID),
			assignment.Status(string(constants.AssignmentActive)),
		).
		Select(assignment.FieldTruckID).
		Scan(ctx, &ids)
	if err != nil {
		r.logger.Error("failed to list active truck ids", "company_id", companyID, "error", err)
		return nil, err
	}
	return ids, nil
}

func (r *assignmentRepository) ActiveDriverIDs(ctx context.Context, companyID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.client.Assignment.Query().
		Where(
			assignment.CompanyID(companyID),
			assignment.Status(string(constants.AssignmentActive)),
		).
		Select(assignment.FieldDriverID).
		Scan(ctx, &ids)
	if err != nil {
		r.logger.Error("failed to list active driver ids", "company_id", companyID, "error", err)
		return nil, err
	}
	return ids, nil
}

// Complete moves one assignment to history with a completion timestamp.
func (r *assignmentRepository) Complete(ctx context.Context, id uuid.UUID) (*entity.Assignment, error) {
	a, err := r.client.Assignment.UpdateOneID(id).
		SetStatus(string(constants.AssignmentHistory)).
		SetCompletedAt(time.Now().UTC()).
		Save(ctx)
	if err != nil {
		r.logger.Error("failed to complete assignment", "assignment_id", id, "error", err)
		return nil, err
	}
	return utils.ToAssignment(a), nil
}

// ArchiveActiveBefore moves every active assignment assigned before cutoff
// to history, stamping completed_at. Returns how many rows moved.
func (r *assignmentRepository) ArchiveActiveBefore(ctx context.Context, cutoff time.Time) (int, error) {
	n, err := r.client.Assignment.Update().
		Where(
			assignment.Status(string(constants.AssignmentActive)),
			assignment.AssignedAtLT(cutoff),
		).
		SetStatus(string(constants.AssignmentHistory)).
		SetCompletedAt(time.Now().UTC()).
		Save(ctx)
	if err != nil {
		r.logger.Error("failed to archive assignments", "cutoff", cutoff, "error", err)
		return 0, err
	}
	return n, nil
}

// PurgeHistoryBefore deletes history rows completed before cutoff.
func (r *assignmentRepository) PurgeHistoryBefore(ctx context.Context, cutoff time.Time) (int, error) {
	n, err := r.client.Assignment.Delete().
		Where(
			assignment.Status(string(constants.AssignmentHistory)),
			assignment.CompletedAtLT(cutoff),
		).
		Exec(ctx)
	if err != nil {
		r.logger.Error("failed to purge assignment history", "cutoff", cutoff, "error", err)
		return 0, err
	}
	return n, nil
}
