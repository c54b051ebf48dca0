package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fleetdocs/fleetdocs/gen/ent"
	"github.com/fleetdocs/fleetdocs/gen/ent/driver"
	"github.com/fleetdocs/fleetdocs/internal/entity"
	"github.com/fleetdocs/fleetdocs/internal/utils"
)

// CreateDriverRequest wraps parameters for onboarding a driver. License must
// already be verified against the driver's claimed name.
type CreateDriverRequest struct {
	CompanyID uuid.UUID
	FirstName string
	LastName  string
	Phone     string
	License   *entity.DocumentRecord
}

type DriverRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Driver, error)
	CreateDriver(ctx context.Context, req *CreateDriverRequest) (*entity.Driver, error)
	ListDrivers(ctx context.Context, companyID uuid.UUID) ([]*entity.Driver, error)
	SetPhone(ctx context.Context, id uuid.UUID, phone string) (*entity.Driver, error)
	SetLicense(ctx context.Context, id uuid.UUID, license entity.DocumentRecord) (*entity.Driver, error)
	DeleteDriver(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type driverRepository struct {
	client *ent.Client
	logger *slog.Logger
}

func NewDriverRepository(client *ent.Client, logger *slog.Logger) DriverRepository {
	return &driverRepository{
		client: client,
		logger: logger,
	}
}

func (r *driverRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Driver, error) {
	d, err := r.client.Driver.Query().Where(driver.ID(id)).Only(ctx)
	if err != nil {
		return nil, err
	}
	return utils.ToDriver(d), nil
}

func (r *driverRepository) CreateDriver(ctx context.Context, req *CreateDriverRequest) (*entity.Driver, error) {
	builder := r.client.Driver.Create().
		SetCompanyID(req.CompanyID).
		SetFirstName(req.FirstName).
		SetLastName(req.LastName).
		SetPhone(req.Phone)
	if req.License != nil {
		builder = builder.SetLicense(req.License)
	}
	d, err := builder.Save(ctx)
	if err != nil {
		r.logger.Error("failed to create driver", "first_name", req.FirstName, "last_name", req.LastName, "error", err)
		return nil, err
	}
	return utils.ToDriver(d), nil
}

func (r *driverRepository) ListDrivers(ctx context.Context, companyID uuid.UUID) ([]*entity.Driver, error) {
	dlist, err := r.client.Driver.Query().
		Where(driver.CompanyID(companyID)).
		Order(driver.ByCreatedAt()).
		All(ctx)
	if err != nil {
		r.logger.Error("failed to list drivers", "company_id", companyID, "error", err)
		return nil, err
	}
	result := make([]*entity.Driver, len(dlist))
	for i, d := range dlist {
		result[i] = utils.ToDriver(d)
	}
	return result, nil
}

func (r *driverRepository) SetPhone(ctx context.Context, id uuid.UUID, phone string) (*entity.Driver, error) {
	d, err := r.client.Driver.UpdateOneID(id).SetPhone(phone).Save(ctx)
	if err != nil {
		r.logger.Error("failed to update driver phone", "driver_id", id, "error", err)
		return nil, err
	}
	return utils.ToDriver(d), nil
}

func (r *driverRepository) SetLicense(ctx context.Context, id uuid.UUID, license entity.DocumentRecord) (*entity.Driver, error) {
	d, err := r.client.Driver.UpdateOneID(id).SetLicense(&license).Save(ctx)
	if err != nil {
		r.logger.Error("failed to update driver license", "driver_id", id, "error", err)
		return nil, err
	}
	return utils.ToDriver(d), nil
}

func (r *driverRepository) DeleteDriver(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Driver.DeleteOneID(id).Exec(ctx); err != nil {
		r.logger.Error("failed to delete driver", "driver_id", id, "error", err)
		return err
	}
	return nil
}

func (r *driverRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := r.client.Driver.Query().Where(driver.ID(id)).Exist(ctx)
	if err != nil {
		r.logger.Error("failed to check driver existence", "driver_id", id, "error", err)
		return false, err
	}
	return exists, nil
}
