package model

// InvoiceType distinguishes business-to-business from business-to-consumer
// invoices.
type InvoiceType string

const (
	InvoiceTypeB2B InvoiceType = "B2B"
	InvoiceTypeB2C InvoiceType = "B2C"
)

// GSTRates lists the rate slabs offered at input time. The calculator does
// not re-check a rate once it is bound to a line item.
var GSTRates = []float64{0, 5, 12, 18, 28, 40}

// LineItem is a single row in the draft's item list.
type LineItem struct {
	Name      string  `json:"name"`
	HSNCode   string  `json:"hsn_code"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Discount  float64 `json:"discount"` // flat amount subtracted pre-tax
	GSTRate   float64 `json:"gst_rate"`
}

// BlankItem returns the line inserted on "add line" and when the last
// remaining item is removed.
func BlankItem() LineItem {
	return LineItem{Quantity: 1, GSTRate: 18}
}

// InvoiceDraft is the in-progress invoice. Items is never empty: removing
// the last item replaces it with one blank item.
type InvoiceDraft struct {
	SellerID        int         `json:"seller_id"`
	BuyerID         int         `json:"buyer_id"`
	InvoiceType     InvoiceType `json:"invoice_type"`
	ReverseCharge   bool        `json:"reverse_charge"`
	ExportFlag      bool        `json:"export_flag"`
	CompositionFlag bool        `json:"composition_flag"`
	LogoBase64      string      `json:"logo_base64,omitempty"`
	TermsConditions string      `json:"terms_conditions"`
	SignatureName   string      `json:"signature_name"`
	Items           []LineItem  `json:"items"`
}

// DefaultDraft returns the fixed draft used at session start and after reset.
func DefaultDraft() InvoiceDraft {
	return InvoiceDraft{
		InvoiceType:   InvoiceTypeB2B,
		SignatureName: "Authorized Signatory",
		Items:         []LineItem{BlankItem()},
	}
}

// Clone returns a deep copy, so a snapshot handed to the persistence layer
// is not aliased by later mutations.
func (d InvoiceDraft) Clone() InvoiceDraft {
	out := d
	out.Items = make([]LineItem, len(d.Items))
	copy(out.Items, d.Items)
	return out
}
