package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/fleetdocs/fleetdocs/constants"
	"github.com/fleetdocs/fleetdocs/internal/entity"
	"github.com/fleetdocs/fleetdocs/internal/parser"
	"github.com/fleetdocs/fleetdocs/internal/repository"
)

// Service produces XLSX bytes for fleet compliance exports.
type Service struct {
	truckRepo repository.TruckRepository
	logger    *slog.Logger
}

func NewService(truckRepo repository.TruckRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{truckRepo: truckRepo, logger: logger}
}

// ExportComplianceXLSX returns a workbook with one row per truck: document
// numbers and expiry dates for every slot, so an operator can see at a
// glance what is due for renewal.
func (s *Service) ExportComplianceXLSX(ctx context.Context, companyID uuid.UUID) ([]byte, error) {
	start := time.Now()

	trucks, err := s.truckRepo.ListTrucks(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("query trucks: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Fleet Compliance"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{"Truck Number"}
	for _, dt := range constants.TruckDocumentTypes {
		label := docLabel(dt)
		headers = append(headers, label+" Number", label+" Expiry")
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, t := range trucks {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, t.TruckNumber)
		col := 2
		for _, dt := range constants.TruckDocumentTypes {
			rec, ok := t.Documents[string(dt)]
			if !ok {
				col += 2
				continue
			}
			write(col, rec.Fields.Number)
			write(col+1, formatExpiry(dt, rec))
			col += 2
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("compliance export complete", "company_id", companyID, "trucks", len(trucks), "elapsed", time.Since(start))
	return buf.Bytes(), nil
}

// formatExpiry picks the date a slot runs out. The fitness certificate
// tracks its main expiry; every other slot uses expiry_date.
func formatExpiry(dt constants.DocumentType, rec entity.DocumentRecord) string {
	d := rec.Fields.ExpiryDate
	if dt == constants.DocTypeFitness {
		d = rec.Fields.MainExpiryDate
	}
	return formatDate(d)
}

func formatDate(d *parser.Date) string {
	if d == nil {
		return ""
	}
	return d.Format("2006-01-02")
}

func docLabel(dt constants.DocumentType) string {
	switch dt {
	case constants.DocTypeRC:
		return "RC"
	case constants.DocTypePUC:
		return "PUC"
	default:
		words := strings.Split(string(dt), "_")
		for i, w := range words {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
		return strings.Join(words, " ")
	}
}
