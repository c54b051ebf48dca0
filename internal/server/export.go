package server

import (
	"context"
	"log/slog"

	fleetpb "github.com/fleetdocs/fleetdocs/gen/proto/fleet/v1"
	"github.com/fleetdocs/fleetdocs/internal/common"
	"github.com/fleetdocs/fleetdocs/internal/export"
)

type ExportServer struct {
	fleetpb.UnimplementedExportServiceServer
	svc    *export.Service
	logger *slog.Logger
}

func NewExportServer(svc *export.Service, logger *slog.Logger) *ExportServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportServer{svc: svc, logger: logger}
}

// ExportCompliance returns the fleet compliance workbook for a company.
func (s *ExportServer) ExportCompliance(ctx context.Context, req *fleetpb.ExportComplianceRequest) (*fleetpb.ExportComplianceResponse, error) {
	companyID, err := parseUUID("company_id", req.GetCompanyId())
	if err != nil {
		return nil, err
	}
	xlsx, err := s.svc.ExportComplianceXLSX(ctx, companyID)
	if err != nil {
		s.logger.Error("export.xlsx.failed", "company_id", companyID, "error", err)
		return nil, common.InternalErrorf("export compliance: %v", err)
	}
	return &fleetpb.ExportComplianceResponse{Xlsx: xlsx}, nil
}
