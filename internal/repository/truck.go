package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fleetdocs/fleetdocs/gen/ent"
	"github.com/fleetdocs/fleetdocs/gen/ent/truck"
	"github.com/fleetdocs/fleetdocs/internal/entity"
	"github.com/fleetdocs/fleetdocs/internal/utils"
)

// CreateTruckRequest wraps parameters for registering a truck. Documents
// must already be verified; keys are document type strings.
type CreateTruckRequest struct {
	CompanyID   uuid.UUID
	TruckNumber string
	Documents   map[string]entity.DocumentRecord
	EMI         *entity.EMISchedule
}

type TruckRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Truck, error)
	GetByNumber(ctx context.Context, truckNumber string) (*entity.Truck, error)
	CreateTruck(ctx context.Context, req *CreateTruckRequest) (*entity.Truck, error)
	ListTrucks(ctx context.Context, companyID uuid.UUID) ([]*entity.Truck, error)
	SetDocument(ctx context.Context, id uuid.UUID, docType string, rec entity.DocumentRecord) (*entity.Truck, error)
	SetEMI(ctx context.Context, id uuid.UUID, emi *entity.EMISchedule) (*entity.Truck, error)
	DeleteTruck(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type truckRepository struct {
	client *ent.Client
	logger *slog.Logger
}

func NewTruckRepository(client *ent.Client, logger *slog.Logger) TruckRepository {
	return &truckRepository{
		client: client,
		logger: logger,
	}
}

func (r *truckRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Truck, error) {
	t, err := r.client.Truck.Query().Where(truck.ID(id)).Only(ctx)
	if err != nil {
		return nil, err
	}
	return utils.ToTruck(t), nil
}

func (r *truckRepository) GetByNumber(ctx context.Context, truckNumber string) (*entity.Truck, error) {
	t, err := r.client.Truck.Query().Where(truck.TruckNumber(truckNumber)).Only(ctx)
	if err != nil {
		return nil, err
	}
	return utils.ToTruck(t), nil
}

func (r *truckRepository) CreateTruck(ctx context.Context, req *CreateTruckRequest) (*entity.Truck, error) {
	builder := r.client.Truck.Create().
		SetCompanyID(req.CompanyID).
		SetTruckNumber(req.TruckNumber).
		SetDocuments(req.Documents)
	if req.EMI != nil {
		builder = builder.SetEmi(req.EMI)
	}
	t, err := builder.Save(ctx)
	if err != nil {
		r.logger.Error("failed to create truck", "truck_number", req.TruckNumber, "error", err)
		return nil, err
	}
	return utils.ToTruck(t), nil
}

func (r *truckRepository) ListTrucks(ctx context.Context, companyID uuid.UUID) ([]*entity.Truck, error) {
	tlist, err := r.client.Truck.Query().
		Where(truck.CompanyID(companyID)).
		Order(truck.ByCreatedAt()).
		All(ctx)
	if err != nil {
		r.logger.Error("failed to list trucks", "company_id", companyID, "error", err)
		return nil, err
	}
	result := make([]*entity.Truck, len(tlist))
	for i, t := range tlist {
		result[i] = utils.ToTruck(t)
	}
	return result, nil
}

// SetDocument replaces one document slot, leaving the others untouched.
func (r *truckRepository) SetDocument(ctx context.Context, id uuid.UUID, docType string, rec entity.DocumentRecord) (*entity.Truck, error) {
	t, err := r.client.Truck.Query().Where(truck.ID(id)).Only(ctx)
	if err != nil {
		return nil, err
	}
	docs := make(map[string]entity.DocumentRecord, len(t.Documents)+1)
	for k, v := range t.Documents {
		docs[k] = v
	}
	docs[docType] = rec

	t, err = r.client.Truck.UpdateOneID(id).SetDocuments(docs).Save(ctx)
	if err != nil {
		r.logger.Error("failed to update truck document", "truck_id", id, "doc_type", docType, "error", err)
		return nil, err
	}
	return utils.ToTruck(t), nil
}

func (r *truckRepository) SetEMI(ctx context.Context, id uuid.UUID, emi *entity.EMISchedule) (*entity.Truck, error) {
	builder := r.client.Truck.UpdateOneID(id)
	if emi == nil {
		builder = builder.ClearEmi()
	} else {
		builder = builder.SetEmi(emi)
	}
	t, err := builder.Save(ctx)
	if err != nil {
		r.logger.Error("failed to update truck emi", "truck_id", id, "error", err)
		return nil, err
	}
	return utils.ToTruck(t), nil
}

func (r *truckRepository) DeleteTruck(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Truck.DeleteOneID(id).Exec(ctx); err != nil {
		r.logger.Error("failed to delete truck", "truck_id", id, "error", err)
		return err
	}
	return nil
}

func (r *truckRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := r.client.Truck.Query().Where(truck.ID(id)).Exist(ctx)
	if err != nil {
		r.logger.Error("failed to check truck existence", "truck_id", id, "error", err)
		return false, err
	}
	return exists, nil
}
