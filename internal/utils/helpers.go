package utils

import (
	"encoding/json"
	"time"

	"github.com/fleetdocs/fleetdocs/gen/ent"
	fleetpb "github.com/fleetdocs/fleetdocs/gen/proto/fleet/v1"
	"github.com/fleetdocs/fleetdocs/internal/entity"
)

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func ToCompany(e *ent.Company) *entity.Company {
	return &entity.Company{
		ID:        e.ID,
		Name:      e.Name,
		OwnerName: e.OwnerName,
		Phone:     e.Phone,
		Email:     e.Email,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToTruck(e *ent.Truck) *entity.Truck {
	return &entity.Truck{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		TruckNumber: e.TruckNumber,
		Documents:   e.Documents,
		EMI:         e.Emi,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func ToDriver(e *ent.Driver) *entity.Driver {
	return &entity.Driver{
		ID:        e.ID,
		CompanyID: e.CompanyID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Phone:     e.Phone,
		License:   e.License,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToAssignment(e *ent.Assignment) *entity.Assignment {
	return &entity.Assignment{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		TruckID:     e.TruckID,
		DriverID:    e.DriverID,
		Status:      e.Status,
		AssignedAt:  e.AssignedAt,
		CompletedAt: e.CompletedAt,
	}
}

func ToPBCompany(c *entity.Company) *fleetpb.Company {
	return &fleetpb.Company{
		Id:        c.ID.String(),
		Name:      c.Name,
		OwnerName: c.OwnerName,
		Phone:     c.Phone,
		Email:     strOrEmpty(c.Email),
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func ToPBDocument(r *entity.DocumentRecord) *fleetpb.Document {
	if r == nil {
		return nil
	}
	fields, _ := json.Marshal(r.Fields)
	return &fleetpb.Document{
		FieldsJson: string(fields),
		S3Url:      r.S3URL,
		VerifiedAt: r.VerifiedAt.UTC().Format(time.RFC3339),
	}
}

func ToPBTruck(t *entity.Truck) *fleetpb.Truck {
	docs := make(map[string]*fleetpb.Document, len(t.Documents))
	for dt, rec := range t.Documents {
		r := rec
		docs[dt] = ToPBDocument(&r)
	}
	out := &fleetpb.Truck{
		Id:          t.ID.String(),
		CompanyId:   t.CompanyID.String(),
		TruckNumber: t.TruckNumber,
		Documents:   docs,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if t.EMI != nil {
		emi, _ := json.Marshal(t.EMI)
		out.EmiJson = string(emi)
	}
	return out
}

func ToPBDriver(d *entity.Driver) *fleetpb.Driver {
	return &fleetpb.Driver{
		Id:        d.ID.String(),
		CompanyId: d.CompanyID.String(),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Phone:     d.Phone,
		License:   ToPBDocument(d.License),
		CreatedAt: d.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: d.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func ToPBAssignment(a *entity.Assignment) *fleetpb.Assignment {
	out := &fleetpb.Assignment{
		Id:         a.ID.String(),
		CompanyId:  a.CompanyID.String(),
		TruckId:    a.TruckID.String(),
		DriverId:   a.DriverID.String(),
		Status:     a.Status,
		AssignedAt: a.AssignedAt.UTC().Format(time.RFC3339),
	}
	if a.CompletedAt != nil {
		out.CompletedAt = a.CompletedAt.UTC().Format(time.RFC3339)
	}
	return out
}
