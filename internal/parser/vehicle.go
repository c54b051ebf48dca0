package parser

import "strings"

// ExtractRC parses a Registration Certificate. The physical certificate has
// no expiry of its own; expiry_date is derived later from the fitness
// certificate.
func ExtractRC(text string) Fields {
	f := Fields{TruckNumber: FindTruckNumber(text)}
	for _, line := range strings.Split(text, "\n") {
		if containsFold(line, "Date of Regn") {
			f.IssueDate = ParseDate(line)
		}
	}
	return f
}

// ExtractPUC parses a Pollution Under Control certificate. The first date
// found anywhere becomes the issue date unless a later trigger already set it.
func ExtractPUC(text string) Fields {
	f := Fields{TruckNumber: FindTruckNumber(text)}
	for _, line := range strings.Split(text, "\n") {
		if containsFold(line, "Certificate SL. No") {
			f.Number = afterLastColon(line)
		}
		if f.IssueDate == nil {
			f.IssueDate = ParseDate(line)
		}
		if containsFold(line, "Validity Upto") {
			f.ExpiryDate = ParseDate(line)
		}
	}
	return f
}

// ExtractTax parses a road-tax receipt.
func ExtractTax(text string) Fields {
	f := Fields{TruckNumber: FindTruckNumber(text)}
	for _, line := range strings.Split(text, "\n") {
		if containsFold(line, "Application Number") || containsFold(line, "Receipt No") {
			f.Number = afterLastColon(line)
		}
		if containsFold(line, "Period") {
			if start, end := ParsePeriod(line); start != nil && end != nil {
				f.IssueDate = start
				f.ExpiryDate = end
			}
		}
	}
	return f
}

// ExtractInsurance parses an insurance policy document.
func ExtractInsurance(text string) Fields {
	f := Fields{TruckNumber: FindTruckNumber(text)}
	for _, line := range strings.Split(text, "\n") {
		if containsFold(line, "Policy Number") {
			f.Number = afterLastColon(line)
		}
		if containsFold(line, "Policy Start Date") {
			f.IssueDate = ParseDate(line)
		}
		if containsFold(line, "Policy End Date") {
			f.ExpiryDate = ParseDate(line)
		}
	}
	return f
}

// ExtractPermit parses a national or state permit; both share one layout.
func ExtractPermit(text string) Fields {
	f := Fields{TruckNumber: FindTruckNumber(text)}
	for _, line := range strings.Split(text, "\n") {
		if containsFold(line, "Permit No") {
			f.Number = afterLastColon(line)
		}
		if containsFold(line, "Validity of Permit") {
			if start, end := ParsePeriod(line); start != nil && end != nil {
				f.IssueDate = start
				f.ExpiryDate = end
			}
		}
	}
	return f
}

// ExtractFitness parses a fitness certificate.
func ExtractFitness(text string) Fields {
	f := Fields{TruckNumber: FindTruckNumber(text)}
	for _, line := range strings.Split(text, "\n") {
		if containsFold(line, "Inspection/Issuance Fee Receipt No") {
			f.Number = afterLastColon(line)
		}
		if containsFold(line, "Application No") {
			f.ApplicationNo = afterLastColon(line)
		}
		if containsFold(line, "Inspected/Issued Date") {
			f.IssueDate = ParseDate(line)
		}
		if containsFold(line, "Certificate will expire on") {
			f.MainExpiryDate = ParseDate(line)
		}
		if containsFold(line, "Next Inspection due date") {
			f.NextInspectionDueDate = ParseDate(line)
		}
	}
	return f
}
