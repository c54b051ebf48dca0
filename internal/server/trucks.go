package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/fleetdocs/fleetdocs/constants"
	fleetpb "github.com/fleetdocs/fleetdocs/gen/proto/fleet/v1"
	"github.com/fleetdocs/fleetdocs/internal/common"
	"github.com/fleetdocs/fleetdocs/internal/entity"
	"github.com/fleetdocs/fleetdocs/internal/ingest"
	"github.com/fleetdocs/fleetdocs/internal/parser"
	"github.com/fleetdocs/fleetdocs/internal/trucks"
	"github.com/fleetdocs/fleetdocs/internal/utils"
)

type TruckServer struct {
	fleetpb.UnimplementedTrucksServiceServer
	svc    *trucks.Service
	logger *slog.Logger
}

func NewTruckServer(svc *trucks.Service, logger *slog.Logger) *TruckServer {
	return &TruckServer{
		svc:    svc,
		logger: logger,
	}
}

// AddTruck registers a truck after verifying its full document set.
func (s *TruckServer) AddTruck(ctx context.Context, req *fleetpb.AddTruckRequest) (*fleetpb.AddTruckResponse, error) {
	companyID, err := parseUUID("company_id", req.GetCompanyId())
	if err != nil {
		return nil, err
	}

	docs := make(map[constants.DocumentType]ingest.File, len(req.GetDocuments()))
	for key, file := range req.GetDocuments() {
		dt, ok := constants.ParseDocumentType(key)
		if !ok || !constants.IsTruckDocument(dt) {
			return nil, common.InvalidArgumentErrorf("unknown document type %q", key)
		}
		docs[dt] = ingest.File{Filename: file.GetFilename(), Content: file.GetContent()}
	}

	emi, err := emiFromPB(req.GetEmi())
	if err != nil {
		return nil, err
	}

	s.logger.Info("truck registration requested", "company_id", companyID, "truck_number", req.GetTruckNumber(), "documents", len(docs))
	t, err := s.svc.AddTruck(ctx, trucks.AddTruckRequest{
		CompanyID:   companyID,
		TruckNumber: req.GetTruckNumber(),
		Documents:   docs,
		EMI:         emi,
	})
	if err != nil {
		return nil, err
	}
	return &fleetpb.AddTruckResponse{Truck: utils.ToPBTruck(t)}, nil
}

// GetTruck returns one truck with its document records.
func (s *TruckServer) GetTruck(ctx context.Context, req *fleetpb.GetTruckRequest) (*fleetpb.GetTruckResponse, error) {
	id, err := parseUUID("truck_id", req.GetTruckId())
	if err != nil {
		return nil, err
	}
	t, err := s.svc.GetTruck(ctx, id)
	if err != nil {
		return nil, err
	}
	return &fleetpb.GetTruckResponse{Truck: utils.ToPBTruck(t)}, nil
}

// ListTrucks lists a company's trucks.
func (s *TruckServer) ListTrucks(ctx context.Context, req *fleetpb.ListTrucksRequest) (*fleetpb.ListTrucksResponse, error) {
	companyID, err := parseUUID("company_id", req.GetCompanyId())
	if err != nil {
		return nil, err
	}
	tlist, err := s.svc.ListTrucks(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*fleetpb.Truck, 0, len(tlist))
	for _, t := range tlist {
		out = append(out, utils.ToPBTruck(t))
	}
	return &fleetpb.ListTrucksResponse{Trucks: out}, nil
}

// UpdateTruckDocument re-verifies and replaces one document slot.
func (s *TruckServer) UpdateTruckDocument(ctx context.Context, req *fleetpb.UpdateTruckDocumentRequest) (*fleetpb.UpdateTruckDocumentResponse, error) {
	id, err := parseUUID("truck_id", req.GetTruckId())
	if err != nil {
		return nil, err
	}
	dt, ok := constants.ParseDocumentType(req.GetDocType())
	if !ok {
		return nil, common.InvalidArgumentErrorf("unknown document type %q", req.GetDocType())
	}
	file := req.GetFile()
	if file == nil {
		return nil, common.InvalidArgumentError("file is required")
	}
	t, err := s.svc.UpdateDocument(ctx, id, dt, ingest.File{Filename: file.GetFilename(), Content: file.GetContent()})
	if err != nil {
		return nil, err
	}
	return &fleetpb.UpdateTruckDocumentResponse{Truck: utils.ToPBTruck(t)}, nil
}

// UpdateEmi replaces the truck's loan schedule.
func (s *TruckServer) UpdateEmi(ctx context.Context, req *fleetpb.UpdateEmiRequest) (*fleetpb.UpdateEmiResponse, error) {
	id, err := parseUUID("truck_id", req.GetTruckId())
	if err != nil {
		return nil, err
	}
	emi, err := emiFromPB(req.GetEmi())
	if err != nil {
		return nil, err
	}
	t, err := s.svc.UpdateEMI(ctx, id, emi)
	if err != nil {
		return nil, err
	}
	return &fleetpb.UpdateEmiResponse{Truck: utils.ToPBTruck(t)}, nil
}

// DeleteTruck removes a truck without an active assignment.
func (s *TruckServer) DeleteTruck(ctx context.Context, req *fleetpb.DeleteTruckRequest) (*fleetpb.DeleteTruckResponse, error) {
	id, err := parseUUID("truck_id", req.GetTruckId())
	if err != nil {
		return nil, err
	}
	if err := s.svc.DeleteTruck(ctx, id); err != nil {
		return nil, err
	}
	return &fleetpb.DeleteTruckResponse{}, nil
}

func emiFromPB(pb *fleetpb.EmiSchedule) (*entity.EMISchedule, error) {
	if pb == nil {
		return nil, nil
	}
	start, err := emiDate("emi.start_date", pb.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := emiDate("emi.end_date", pb.EndDate)
	if err != nil {
		return nil, err
	}
	return &entity.EMISchedule{
		TotalLoanAmount:       pb.TotalLoanAmount,
		EMIPerMonth:           pb.EmiPerMonth,
		StartDate:             start,
		EndDate:               end,
		CompletedInstallments: int(pb.GetCompletedInstallments()),
	}, nil
}

func emiDate(field string, s *string) (*parser.Date, error) {
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, common.InvalidArgumentErrorf("%s must be YYYY-MM-DD", field)
	}
	return &parser.Date{Time: t}, nil
}
