package constants

import (
	"strings"
)

// DocumentType is the closed set of regulatory documents the pipeline
// understands. Stable values (store these exact strings in DB).
type DocumentType string

const (
	DocTypeRC             DocumentType = "rc"
	DocTypePUC            DocumentType = "puc"
	DocTypeTax            DocumentType = "tax"
	DocTypeInsurance      DocumentType = "insurance"
	DocTypeNationalPermit DocumentType = "national_permit"
	DocTypeStatePermit    DocumentType = "state_permit"
	DocTypeFitness        DocumentType = "fitness"
	DocTypeLicense        DocumentType = "license"
)

// TruckDocumentTypes lists the seven document slots every truck must carry,
// in the order the assembler polls and verifies them.
var TruckDocumentTypes = []DocumentType{
	DocTypeRC,
	DocTypePUC,
	DocTypeTax,
	DocTypeInsurance,
	DocTypeNationalPermit,
	DocTypeStatePermit,
	DocTypeFitness,
}

var allDocumentTypes = append(append([]DocumentType{}, TruckDocumentTypes...), DocTypeLicense)

func DocumentTypeStrings() []string {
	result := make([]string, len(allDocumentTypes))
	for i, dt := range allDocumentTypes {
		result[i] = string(dt)
	}
	return result
}

// ParseDocumentType maps user input onto the enum.
func ParseDocumentType(input string) (DocumentType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	for _, dt := range allDocumentTypes {
		if normalized == string(dt) {
			return dt, true
		}
	}
	return "", false
}

// IsTruckDocument reports whether dt is one of the seven vehicle slots
// (everything except the driving license).
func IsTruckDocument(dt DocumentType) bool {
	return dt != DocTypeLicense && dt != ""
}
