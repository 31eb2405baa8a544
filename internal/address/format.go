package address

import (
	"fmt"
	"strings"
)

// Fields holds the structured address components of a location.
type Fields struct {
	Street      string
	HouseNumber string
	PostalCode  string
	City        string
	Country     string
}

// Format builds the canonical single-line representation used as the
// geocoding query and stored on jobs as an immutable snapshot.
func Format(f Fields) string {
	return strings.TrimSpace(fmt.Sprintf(
		"%s %s, %s %s, %s",
		f.Street, f.HouseNumber, f.PostalCode, f.City, f.Country,
	))
}

// Equal reports whether two addresses have identical structured fields.
// Used to decide whether an edit actually changed the address.
func (f Fields) Equal(other Fields) bool {
	return f == other
}
