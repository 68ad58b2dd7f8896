package model

// InvoiceStatus is the lifecycle state of a submitted invoice.
type InvoiceStatus string

const (
	StatusDraft InvoiceStatus = "DRAFT"
	StatusFinal InvoiceStatus = "FINAL"
)

// Invoice is the resource returned by the submission service. Once Status
// is FINAL the draft that produced it is locked from further edits.
type Invoice struct {
	ID              int           `json:"id"`
	InvoiceNumber   string        `json:"invoice_number"`
	Status          InvoiceStatus `json:"status"`
	GrandTotal      float64       `json:"grand_total"`
	GrandTotalWords string        `json:"grand_total_words"`
}

// HSNSuggestion is one row from the HSN master lookup, used only as a
// display hint while typing a code.
type HSNSuggestion struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
