package server

import (
	"context"
	"log/slog"

	fleetpb "github.com/fleetdocs/fleetdocs/gen/proto/fleet/v1"
	"github.com/fleetdocs/fleetdocs/internal/common"
	"github.com/fleetdocs/fleetdocs/internal/drivers"
	"github.com/fleetdocs/fleetdocs/internal/ingest"
	"github.com/fleetdocs/fleetdocs/internal/utils"
)

type DriverServer struct {
	fleetpb.UnimplementedDriversServiceServer
	svc    *drivers.Service
	logger *slog.Logger
}

func NewDriverServer(svc *drivers.Service, logger *slog.Logger) *DriverServer {
	return &DriverServer{
		svc:    svc,
		logger: logger,
	}
}

// AddDriver onboards a driver after verifying the license against the
// claimed name.
func (s *DriverServer) AddDriver(ctx context.Context, req *fleetpb.AddDriverRequest) (*fleetpb.AddDriverResponse, error) {
	companyID, err := parseUUID("company_id", req.GetCompanyId())
	if err != nil {
		return nil, err
	}
	license := req.GetLicense()
	if license == nil {
		return nil, common.InvalidArgumentError("license is required")
	}

	s.logger.Info("driver onboarding requested", "company_id", companyID, "first_name", req.GetFirstName(), "last_name", req.GetLastName())
	d, err := s.svc.AddDriver(ctx, drivers.AddDriverRequest{
		CompanyID: companyID,
		FirstName: req.GetFirstName(),
		LastName:  req.GetLastName(),
		Phone:     req.GetPhone(),
		License:   ingest.File{Filename: license.GetFilename(), Content: license.GetContent()},
	})
	if err != nil {
		return nil, err
	}
	return &fleetpb.AddDriverResponse{Driver: utils.ToPBDriver(d)}, nil
}

// GetDriver returns one driver.
func (s *DriverServer) GetDriver(ctx context.Context, req *fleetpb.GetDriverRequest) (*fleetpb.GetDriverResponse, error) {
	id, err := parseUUID("driver_id", req.GetDriverId())
	if err != nil {
		return nil, err
	}
	d, err := s.svc.GetDriver(ctx, id)
	if err != nil {
		return nil, err
	}
	return &fleetpb.GetDriverResponse{Driver: utils.ToPBDriver(d)}, nil
}

// ListDrivers lists a company's drivers.
func (s *DriverServer) ListDrivers(ctx context.Context, req *fleetpb.ListDriversRequest) (*fleetpb.ListDriversResponse, error) {
	companyID, err := parseUUID("company_id", req.GetCompanyId())
	if err != nil {
		return nil, err
	}
	dlist, err := s.svc.ListDrivers(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*fleetpb.Driver, 0, len(dlist))
	for _, d := range dlist {
		out = append(out, utils.ToPBDriver(d))
	}
	return &fleetpb.ListDriversResponse{Drivers: out}, nil
}

// UpdateDriverPhone changes the driver's contact number.
func (s *DriverServer) UpdateDriverPhone(ctx context.Context, req *fleetpb.UpdateDriverPhoneRequest) (*fleetpb.UpdateDriverPhoneResponse, error) {
	id, err := parseUUID("driver_id", req.GetDriverId())
	if err != nil {
		return nil, err
	}
	d, err := s.svc.UpdatePhone(ctx, id, req.GetPhone())
	if err != nil {
		return nil, err
	}
	return &fleetpb.UpdateDriverPhoneResponse{Driver: utils.ToPBDriver(d)}, nil
}

// UpdateDriverLicense re-verifies a new license file and replaces the
// stored record.
func (s *DriverServer) UpdateDriverLicense(ctx context.Context, req *fleetpb.UpdateDriverLicenseRequest) (*fleetpb.UpdateDriverLicenseResponse, error) {
	id, err := parseUUID("driver_id", req.GetDriverId())
	if err != nil {
		return nil, err
	}
	license := req.GetLicense()
	if license == nil {
		return nil, common.InvalidArgumentError("license is required")
	}
	d, err := s.svc.UpdateLicense(ctx, id, ingest.File{Filename: license.GetFilename(), Content: license.GetContent()})
	if err != nil {
		return nil, err
	}
	return &fleetpb.UpdateDriverLicenseResponse{Driver: utils.ToPBDriver(d)}, nil
}

// DeleteDriver removes a driver without an active assignment.
func (s *DriverServer) DeleteDriver(ctx context.Context, req *fleetpb.DeleteDriverRequest) (*fleetpb.DeleteDriverResponse, error) {
	id, err := parseUUID("driver_id", req.GetDriverId())
	if err != nil {
		return nil, err
	}
	if err := s.svc.DeleteDriver(ctx, id); err != nil {
		return nil, err
	}
	return &fleetpb.DeleteDriverResponse{}, nil
}
