package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fleetdocs/fleetdocs/gen/ent"
	"github.com/fleetdocs/fleetdocs/gen/ent/company"
)

type Company struct {
	Name      string
	OwnerName string
	Phone     string
	Email     string
}

type CompanyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ent.Company, error)
	CreateCompany(ctx context.Context, c *Company) (*ent.Company, error)
	ListCompanies(ctx context.Context) ([]*ent.Company, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type companyRepository struct {
	client *ent.Client
	logger *slog.Logger
}

func NewCompanyRepository(client *ent.Client, logger *slog.Logger) CompanyRepository {
	return &companyRepository{
		client: client,
		logger: logger,
	}
}

func (r *companyRepository) GetByID(ctx context.Context, id uuid.UUID) (*ent.Company, error) {
	return r.client.Company.
		Query().
		Where(company.ID(id)).
		Only(ctx)
}

func (r *companyRepository) CreateCompany(ctx context.Context, c *Company) (*ent.Company, error) {
	builder := r.client.Company.Create().
		SetName(c.Name).
		SetOwnerName(c.OwnerName).
		SetPhone(c.Phone)
	if c.Email != "" {
		builder = builder.SetEmail(c.Email)
	}
	created, err := builder.Save(ctx)
	if err != nil {
		r.logger.Error("failed to create company", "name", c.Name, "error", err)
		return nil, err
	}
	return created, nil
}

func (r *companyRepository) ListCompanies(ctx context.Context) ([]*ent.Company, error) {
	clist, err := r.client.Company.Query().Order(company.ByCreatedAt()).All(ctx)
	if err != nil {
		r.logger.Error("failed to list companies", "error", err)
		return nil, err
	}
	return clist, nil
}

func (r *companyRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := r.client.Company.Query().Where(company.ID(id)).Exist(ctx)
	if err != nil {
		r.logger.Error("failed to check company existence", "company_id", id, "error", err)
		return false, err
	}
	return exists, nil
}
