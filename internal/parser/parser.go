// Package parser turns raw OCR text from scanned fleet documents into
// structured fields. Extractors are total functions: malformed or missing
// input yields absent fields, never an error.
package parser

import (
	"regexp"
	"strings"
	"time"
)

// Date is a calendar date without a time-of-day component. It marshals as
// "2006-01-02" so extracted fields can be schema-validated and stored as JSON.
type Date struct{ time.Time }

func NewDate(year int, month time.Month, day int) *Date {
	return &Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Fields is the union of everything the per-type extractors can produce.
// Absent values stay zero and are omitted from JSON; an extractor never
// fabricates a value it could not find in the text.
type Fields struct {
	TruckNumber           string `json:"truck_number,omitempty"`
	Number                string `json:"number,omitempty"`
	IssueDate             *Date  `json:"issue_date,omitempty"`
	ExpiryDate            *Date  `json:"expiry_date,omitempty"`
	ApplicationNo         string `json:"application_no,omitempty"`
	MainExpiryDate        *Date  `json:"main_expiry_date,omitempty"`
	NextInspectionDueDate *Date  `json:"next_inspection_due_date,omitempty"`
	LicenseNumber         string `json:"license_number,omitempty"`
	NameOnLicense         string `json:"name_on_license,omitempty"`
	ValidityNT            *Date  `json:"validity_nt,omitempty"`
	ValidityTR            *Date  `json:"validity_tr,omitempty"`
}

var (
	truckNumberRe = regexp.MustCompile(`(?i)\b([A-Z]{2}[- ]?\d{2}[- ]?[A-Z]{1,2}[- ]?\d{4})\b`)
	numericDateRe = regexp.MustCompile(`\b(\d{2})[-/](\d{2})[-/](\d{4})\b`)
	monthDateRe   = regexp.MustCompile(`\b(\d{2})-([A-Za-z]{3})-(\d{4})\b`)
	dateTokenRe   = regexp.MustCompile(`(?i)\b(\d{2}[-/][A-Za-z]{3}[-/]\d{4}|\d{2}[-/]\d{2}[-/]\d{4})\b`)
)

// FindTruckNumber scans text for a vehicle registration number
// (e.g. MH20EE1234), tolerating stray spaces and hyphens inside the token.
// The first match wins; the result is canonicalized.
func FindTruckNumber(text string) string {
	m := truckNumberRe.FindString(text)
	if m == "" {
		return ""
	}
	return CanonicalTruckNumber(m)
}

// CanonicalTruckNumber strips spaces/hyphens and upper-cases a plate.
func CanonicalTruckNumber(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return strings.ToUpper(s)
}

// ParseDate finds the first date in text, recognizing dd-mm-yyyy, dd/mm/yyyy
// and dd-Mon-yyyy. A token that looks numeric but parses under neither
// numeric format means "no date here" rather than an error.
func ParseDate(text string) *Date {
	if m := numericDateRe.FindString(text); m != "" {
		if t, err := time.Parse("02-01-2006", m); err == nil {
			return &Date{t}
		}
		if t, err := time.Parse("02/01/2006", m); err == nil {
			return &Date{t}
		}
		return nil
	}
	if g := monthDateRe.FindStringSubmatch(text); g != nil {
		// Go month names are case-sensitive; OCR text is not.
		mon := strings.ToUpper(g[2][:1]) + strings.ToLower(g[2][1:])
		if t, err := time.Parse("02-Jan-2006", g[1]+"-"+mon+"-"+g[3]); err == nil {
			return &Date{t}
		}
	}
	return nil
}

// ParsePeriod parses a "From X to Y" style range. It needs at least two
// date-like tokens on the line; otherwise both results are nil.
func ParsePeriod(text string) (start, end *Date) {
	matches := dateTokenRe.FindAllString(text, -1)
	if len(matches) < 2 {
		return nil, nil
	}
	return ParseDate(matches[0]), ParseDate(matches[1])
}

// containsFold reports whether line contains sub, case-insensitively.
func containsFold(line, sub string) bool {
	return strings.Contains(strings.ToLower(line), strings.ToLower(sub))
}

// afterLastColon returns the text after the final ':' on the line, trimmed.
// Lines without a colon come back whole.
func afterLastColon(line string) string {
	if i := strings.LastIndex(line, ":"); i >= 0 {
		line = line[i+1:]
	}
	return strings.TrimSpace(line)
}
