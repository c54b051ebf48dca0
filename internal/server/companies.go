package server

import (
	"context"
	"log/slog"

	fleetpb "github.com/fleetdocs/fleetdocs/gen/proto/fleet/v1"
	"github.com/fleetdocs/fleetdocs/internal/companies"
	"github.com/fleetdocs/fleetdocs/internal/utils"
)

type CompanyServer struct {
	fleetpb.UnimplementedCompaniesServiceServer
	svc    *companies.Service
	logger *slog.Logger
}

func NewCompanyServer(svc *companies.Service, logger *slog.Logger) *CompanyServer {
	return &CompanyServer{
		svc:    svc,
		logger: logger,
	}
}

// CreateCompany registers a new fleet operator.
func (s *CompanyServer) CreateCompany(ctx context.Context, req *fleetpb.CreateCompanyRequest) (*fleetpb.CreateCompanyResponse, error) {
	c, err := s.svc.CreateCompany(ctx, companies.CreateCompanyRequest{
		Name:      req.GetName(),
		OwnerName: req.GetOwnerName(),
		Phone:     req.GetPhone(),
		Email:     req.GetEmail(),
	})
	if err != nil {
		return nil, err
	}
	return &fleetpb.CreateCompanyResponse{Company: utils.ToPBCompany(c)}, nil
}

// GetCompany returns one company.
func (s *CompanyServer) GetCompany(ctx context.Context, req *fleetpb.GetCompanyRequest) (*fleetpb.GetCompanyResponse, error) {
	id, err := parseUUID("company_id", req.GetCompanyId())
	if err != nil {
		return nil, err
	}
	c, err := s.svc.GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	return &fleetpb.GetCompanyResponse{Company: utils.ToPBCompany(c)}, nil
}

// ListCompanies lists all registered companies.
func (s *CompanyServer) ListCompanies(ctx context.Context, _ *fleetpb.ListCompaniesRequest) (*fleetpb.ListCompaniesResponse, error) {
	clist, err := s.svc.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*fleetpb.Company, 0, len(clist))
	for _, c := range clist {
		out = append(out, utils.ToPBCompany(c))
	}
	return &fleetpb.ListCompaniesResponse{Companies: out}, nil
}
