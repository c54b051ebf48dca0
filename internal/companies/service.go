package companies

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/fleetdocs/fleetdocs/internal/common"
	"github.com/fleetdocs/fleetdocs/internal/entity"
	"github.com/fleetdocs/fleetdocs/internal/repository"
	"github.com/fleetdocs/fleetdocs/internal/utils"
)

// Service handles company business logic.
type Service struct {
	companyRepo repository.CompanyRepository
	logger      *slog.Logger
}

// NewService creates a new company service.
func NewService(companyRepo repository.CompanyRepository, logger *slog.Logger) *Service {
	return &Service{
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// CreateCompanyRequest represents company registration parameters.
type CreateCompanyRequest struct {
	Name      string
	OwnerName string
	Phone     string
	Email     string
}

// CreateCompany registers a new fleet operator.
func (s *Service) CreateCompany(ctx context.Context, req CreateCompanyRequest) (*entity.Company, error) {
	v := common.NewValidator().
		Field("name", req.Name, common.Required).
		Field("owner_name", req.OwnerName, common.Required).
		Field("phone", req.Phone, common.Required, common.PhoneNumber)
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}

	c, err := s.companyRepo.CreateCompany(ctx, &repository.Company{
		Name:      strings.TrimSpace(req.Name),
		OwnerName: strings.TrimSpace(req.OwnerName),
		Phone:     req.Phone,
		Email:     strings.TrimSpace(req.Email),
	})
	if err != nil {
		return nil, common.InternalErrorf("create company: %v", err)
	}

	s.logger.Info("company created successfully", "company_id", c.ID, "name", c.Name)
	return utils.ToCompany(c), nil
}

// GetCompany returns one company by id.
func (s *Service) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	c, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, common.NotFoundError("company not found")
	}
	return utils.ToCompany(c), nil
}

// ListCompanies returns all companies.
func (s *Service) ListCompanies(ctx context.Context) ([]*entity.Company, error) {
	clist, err := s.companyRepo.ListCompanies(ctx)
	if err != nil {
		// DB error already logged in repository layer
		return nil, common.InternalErrorf("list companies: %v", err)
	}
	out := make([]*entity.Company, len(clist))
	for i, c := range clist {
		out[i] = utils.ToCompany(c)
	}
	return out, nil
}
