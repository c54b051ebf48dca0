package server

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fleetdocs/fleetdocs/constants"
	fleetpb "github.com/fleetdocs/fleetdocs/gen/proto/fleet/v1"
	"github.com/fleetdocs/fleetdocs/internal/assignments"
	"github.com/fleetdocs/fleetdocs/internal/common"
	"github.com/fleetdocs/fleetdocs/internal/utils"
)

type AssignmentServer struct {
	fleetpb.UnimplementedAssignmentsServiceServer
	svc    *assignments.Service
	logger *slog.Logger
}

func NewAssignmentServer(svc *assignments.Service, logger *slog.Logger) *AssignmentServer {
	return &AssignmentServer{
		svc:    svc,
		logger: logger,
	}
}

// CreateAssignment pairs a driver with a truck.
func (s *AssignmentServer) CreateAssignment(ctx context.Context, req *fleetpb.CreateAssignmentRequest) (*fleetpb.CreateAssignmentResponse, error) {
	companyID, err := parseUUID("company_id", req.GetCompanyId())
	if err != nil {
		return nil, err
	}
	truckID, err := parseUUID("truck_id", req.GetTruckId())
	if err != nil {
		return nil, err
	}
	driverID, err := parseUUID("driver_id", req.GetDriverId())
	if err != nil {
		return nil, err
	}
	a, err := s.svc.CreateAssignment(ctx, companyID, truckID, driverID)
	if err != nil {
		return nil, err
	}
	return &fleetpb.CreateAssignmentResponse{Assignment: utils.ToPBAssignment(a)}, nil
}

// CompleteAssignment moves an active assignment to history.
func (s *AssignmentServer) CompleteAssignment(ctx context.Context, req *fleetpb.CompleteAssignmentRequest) (*fleetpb.CompleteAssignmentResponse, error) {
	id, err := parseUUID("assignment_id", req.GetAssignmentId())
	if err != nil {
		return nil, err
	}
	a, err := s.svc.CompleteAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	return &fleetpb.CompleteAssignmentResponse{Assignment: utils.ToPBAssignment(a)}, nil
}

// ListAssignments lists a company's assignments in one status.
func (s *AssignmentServer) ListAssignments(ctx context.Context, req *fleetpb.ListAssignmentsRequest) (*fleetpb.ListAssignmentsResponse, error) {
	companyID, err := parseUUID("company_id", req.GetCompanyId())
	if err != nil {
		return nil, err
	}

	st := constants.AssignmentActive
	if v := strings.TrimSpace(req.GetStatus()); v != "" {
		switch v {
		case string(constants.AssignmentActive):
			st = constants.AssignmentActive
		case string(constants.AssignmentHistory):
			st = constants.AssignmentHistory
		default:
			return nil, common.InvalidArgumentErrorf("unknown status %q", v)
		}
	}

	alist, err := s.svc.ListAssignments(ctx, companyID, st)
	if err != nil {
		return nil, err
	}
	out := make([]*fleetpb.Assignment, 0, len(alist))
	for _, a := range alist {
		out = append(out, utils.ToPBAssignment(a))
	}
	return &fleetpb.ListAssignmentsResponse{Assignments: out}, nil
}

// ListUnassigned returns the trucks and drivers free for a new pairing.
func (s *AssignmentServer) ListUnassigned(ctx context.Context, req *fleetpb.ListUnassignedRequest) (*fleetpb.ListUnassignedResponse, error) {
	companyID, err := parseUUID("company_id", req.GetCompanyId())
	if err != nil {
		return nil, err
	}
	trucks, drivers, err := s.svc.UnassignedResources(ctx, companyID)
	if err != nil {
		return nil, err
	}
	resp := &fleetpb.ListUnassignedResponse{
		Trucks:  make([]*fleetpb.Truck, 0, len(trucks)),
		Drivers: make([]*fleetpb.Driver, 0, len(drivers)),
	}
	for _, t := range trucks {
		resp.Trucks = append(resp.Trucks, utils.ToPBTruck(t))
	}
	for _, d := range drivers {
		resp.Drivers = append(resp.Drivers, utils.ToPBDriver(d))
	}
	return resp, nil
}
