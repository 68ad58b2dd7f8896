package tax

import (
	"github.com/gstdraft-dev/gstdraft/internal/model"
	"github.com/gstdraft-dev/gstdraft/internal/money"
)

// Line is the derived breakdown for one line item.
type Line struct {
	Taxable float64
	Tax     float64
	Total   float64
}

// Preview is the fully derived tax breakdown for a draft. It is recomputed
// wholesale on every mutation and never persisted.
type Preview struct {
	Lines        []Line
	TotalTaxable float64
	TotalTax     float64
	GrandTotal   float64
	Mode         Mode
	CGST         float64
	SGST         float64
	IGST         float64
}

// ComputePreview derives per-line and aggregate values from the draft.
// Rounding happens at every step: per line and again at each aggregate sum.
// No rate validation is performed; an out-of-range gst_rate is multiplied
// as-is, and a discount larger than the line base yields a negative taxable
// value.
func ComputePreview(d model.InvoiceDraft, mode Mode) Preview {
	lines := make([]Line, len(d.Items))
	var sumTaxable, sumTax float64
	for i, item := range d.Items {
		taxable := money.Round2(money.Round2(item.Quantity*item.UnitPrice) - money.Round2(item.Discount))
		var tax float64
		if !d.CompositionFlag && !d.ExportFlag {
			tax = money.Round2(taxable * money.Round2(item.GSTRate) / 100)
		}
		lines[i] = Line{Taxable: taxable, Tax: tax, Total: money.Round2(taxable + tax)}
		sumTaxable += lines[i].Taxable
		sumTax += lines[i].Tax
	}

	p := Preview{
		Lines:        lines,
		TotalTaxable: money.Round2(sumTaxable),
		TotalTax:     money.Round2(sumTax),
		Mode:         mode,
	}
	p.GrandTotal = money.Round2(p.TotalTaxable + p.TotalTax)

	// The split presents the already-rounded total: CGST and SGST are each
	// exactly half of it, not independently re-rounded.
	switch mode {
	case ModeCGSTSGST:
		p.CGST = p.TotalTax / 2
		p.SGST = p.TotalTax / 2
	case ModeIGST:
		p.IGST = p.TotalTax
	}
	return p
}
