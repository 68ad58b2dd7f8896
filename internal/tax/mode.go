package tax

import "github.com/gstdraft-dev/gstdraft/internal/model"

// Mode says how the total tax is split for display: CGST+SGST for
// intra-state supply, a single IGST component for inter-state, or zero-rated
// for export. It is advisory metadata; the amount itself is controlled by
// the composition and export flags in the calculator.
type Mode string

const (
	ModeCGSTSGST Mode = "cgst_sgst"
	ModeIGST     Mode = "igst"
	ModeZero     Mode = "zero"
)

// ResolveMode derives the display mode from the parties and the export flag.
// Export wins regardless of states. When either party is unresolved the
// supply is treated as inter-state.
func ResolveMode(seller, buyer *model.Party, exportFlag bool) Mode {
	if exportFlag {
		return ModeZero
	}
	if seller != nil && buyer != nil && seller.StateCode == buyer.StateCode {
		return ModeCGSTSGST
	}
	return ModeIGST
}
