package parser

import (
	"regexp"
	"strings"
)

var licenseNumberRe = regexp.MustCompile(`\b([A-Z]{2}\d{13,14})\b`)

// ExtractLicense parses an Indian driving license. The holder's name comes
// from a "Name" line (value after the colon, or the following line when the
// label stands alone); "Surname, Given" order is flipped to "Given Surname".
func ExtractLicense(text string) Fields {
	var f Fields
	if m := licenseNumberRe.FindString(text); m != "" {
		f.LicenseNumber = m
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lower := strings.ToLower(line)

		if strings.Contains(lower, "name") && !strings.Contains(lower, "father") {
			var name string
			if strings.Contains(line, ":") {
				name = afterLastColon(line)
			} else if i+1 < len(lines) {
				name = strings.TrimSpace(lines[i+1])
			}
			if name != "" {
				if strings.Contains(name, ",") {
					parts := strings.SplitN(name, ",", 2)
					surname := strings.TrimSpace(parts[0])
					given := strings.TrimSpace(parts[1])
					if given != "" {
						name = given + " " + surname
					}
				}
				f.NameOnLicense = name
			}
		}

		if strings.Contains(lower, "issue date") || strings.Contains(lower, "doi") {
			if dt := ParseDate(line); dt != nil {
				f.IssueDate = dt
			}
		}
		if strings.Contains(lower, "validity") && strings.Contains(lower, "nt") {
			if dt := ParseDate(line); dt != nil {
				f.ValidityNT = dt
			}
		}
		if strings.Contains(lower, "validity") && strings.Contains(lower, "tr") {
			if dt := ParseDate(line); dt != nil {
				f.ValidityTR = dt
			}
		}
	}
	return f
}
