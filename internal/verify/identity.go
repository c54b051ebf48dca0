// Package verify cross-checks the identity extracted from a document against
// the record the caller claims to be updating.
package verify

import (
	"strings"

	"github.com/fleetdocs/fleetdocs/internal/parser"
)

// TruckNumber requires byte-for-byte equality after canonicalization.
// Returns the canonical claimed value alongside the verdict so callers can
// report both sides of a mismatch.
func TruckNumber(claimed, extracted string) (canonical string, ok bool) {
	canonical = parser.CanonicalTruckNumber(claimed)
	if canonical == "" || extracted == "" {
		return canonical, false
	}
	return canonical, extracted == canonical
}

// LicenseName matches when the name extracted from the license is a
// substring of the claimed full name, both lower-cased and trimmed. The
// looseness is deliberate: it tolerates missing middle names and titles in
// the input while still rejecting unrelated names. An empty extracted name
// never matches.
func LicenseName(firstName, lastName, extracted string) (claimed string, ok bool) {
	claimed = strings.TrimSpace(strings.ToLower(firstName + " " + lastName))
	name := strings.TrimSpace(strings.ToLower(extracted))
	if name == "" {
		return claimed, false
	}
	return claimed, strings.Contains(claimed, name)
}
