package gst

import "regexp"

var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][A-Z0-9]Z[A-Z0-9]$`)

// IsValidGSTIN reports whether gstin follows the standard 15-character
// format: 2-digit state code, PAN, entity code, 'Z', check character.
func IsValidGSTIN(gstin string) bool {
	return gstinPattern.MatchString(gstin)
}

// StateCode extracts the 2-digit state code prefix from a GSTIN.
// Returns "" when the input is too short to carry one.
func StateCode(gstin string) string {
	if len(gstin) < 2 {
		return ""
	}
	return gstin[:2]
}
