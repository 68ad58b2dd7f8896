package draft

import (
	"fmt"
	"regexp"

	"github.com/gstdraft-dev/gstdraft/internal/model"
)

var hsnPattern = regexp.MustCompile(`^\d{4,8}$`)

// Errors maps dotted field paths ("items.2.hsn_code") to human-readable
// messages. Absence of a key means the field is valid. Submission is blocked
// while the map is non-empty.
type Errors map[string]string

// Valid reports whether the map carries no errors.
func (e Errors) Valid() bool {
	return len(e) == 0
}

// Validate recomputes the full error map for a draft. All rules are
// independent and all are evaluated; no incremental diffing, drafts are
// small enough to re-check on every keystroke.
func Validate(d model.InvoiceDraft) Errors {
	errs := Errors{}
	if d.SellerID == 0 {
		errs["seller_id"] = "Seller is required"
	}
	if d.BuyerID == 0 {
		errs["buyer_id"] = "Buyer is required"
	}
	for i, item := range d.Items {
		if item.Name == "" {
			errs[fmt.Sprintf("items.%d.name", i)] = "Item name required"
		}
		if !hsnPattern.MatchString(item.HSNCode) {
			errs[fmt.Sprintf("items.%d.hsn_code", i)] = "HSN must be 4-8 digits"
		}
		if item.Quantity <= 0 {
			errs[fmt.Sprintf("items.%d.quantity", i)] = "Qty must be > 0"
		}
	}
	return errs
}
