package gst

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FinancialYear returns the Indian financial year containing t as "YYYY-YY".
// The year rolls over on April 1st.
func FinancialYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

// ParseInvoiceNumber splits a service-issued invoice number like
// "2025-26/27/000042" into financial year, state code, and sequence.
func ParseInvoiceNumber(s string) (fy, stateCode string, seq int, err error) {
	parts := strings.SplitN(s, "/", 3)
	if len(parts) != 3 {
		return "", "", 0, fmt.Errorf("invalid invoice number format: %q", s)
	}
	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", "", 0, fmt.Errorf("invalid sequence in invoice number %q: %w", s, err)
	}
	return parts[0], parts[1], seq, nil
}
