// Package registry binds each DocumentType to its field extractor and its
// expected result schema. Dispatch is an exhaustive switch over the closed
// enum, so an unhandled type is a compile-visible hole rather than a nil
// lookup at runtime.
package registry

import (
	"fmt"

	"github.com/fleetdocs/fleetdocs/constants"
	"github.com/fleetdocs/fleetdocs/internal/parser"
)

// Extract runs the registered extractor for dt over raw OCR text.
func Extract(dt constants.DocumentType, text string) (parser.Fields, error) {
	switch dt {
	case constants.DocTypeRC:
		return parser.ExtractRC(text), nil
	case constants.DocTypePUC:
		return parser.ExtractPUC(text), nil
	case constants.DocTypeTax:
		return parser.ExtractTax(text), nil
	case constants.DocTypeInsurance:
		return parser.ExtractInsurance(text), nil
	case constants.DocTypeNationalPermit, constants.DocTypeStatePermit:
		return parser.ExtractPermit(text), nil
	case constants.DocTypeFitness:
		return parser.ExtractFitness(text), nil
	case constants.DocTypeLicense:
		return parser.ExtractLicense(text), nil
	default:
		return parser.Fields{}, fmt.Errorf("no extractor registered for document type %q", dt)
	}
}

// Schema returns the JSON-Schema (draft 2020-12 subset) describing the
// fields the extractor for dt may produce. All fields are optional; the
// schema bounds the shape, not the completeness.
func Schema(dt constants.DocumentType) map[string]any {
	props := map[string]any{}
	switch dt {
	case constants.DocTypeRC:
		props["truck_number"] = plateProp()
		props["issue_date"] = dateProp()
		props["expiry_date"] = dateProp() // derived from the fitness certificate
	case constants.DocTypePUC, constants.DocTypeTax, constants.DocTypeInsurance,
		constants.DocTypeNationalPermit, constants.DocTypeStatePermit:
		props["truck_number"] = plateProp()
		props["number"] = map[string]any{"type": "string", "minLength": 1}
		props["issue_date"] = dateProp()
		props["expiry_date"] = dateProp()
	case constants.DocTypeFitness:
		props["truck_number"] = plateProp()
		props["number"] = map[string]any{"type": "string", "minLength": 1}
		props["application_no"] = map[string]any{"type": "string", "minLength": 1}
		props["issue_date"] = dateProp()
		props["main_expiry_date"] = dateProp()
		props["next_inspection_due_date"] = dateProp()
	case constants.DocTypeLicense:
		props["license_number"] = map[string]any{"type": "string", "pattern": `^[A-Z]{2}\d{13,14}$`}
		props["name_on_license"] = map[string]any{"type": "string", "minLength": 1}
		props["issue_date"] = dateProp()
		props["validity_nt"] = dateProp()
		props["validity_tr"] = dateProp()
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}

func dateProp() map[string]any {
	return map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`}
}

func plateProp() map[string]any {
	return map[string]any{"type": "string", "pattern": `^[A-Z]{2}\d{2}[A-Z]{1,2}\d{4}$`}
}
