package tax

// SupplyType classifies the supply for documentation purposes.
type SupplyType string

const (
	SupplyIntra  SupplyType = "intra"
	SupplyInter  SupplyType = "inter"
	SupplyExport SupplyType = "export"
)

// Rule is the full GST behavior for a transaction: whether output tax is
// charged at all, how it is split, and whether liability shifts to the
// recipient under reverse charge.
type Rule struct {
	Supply                SupplyType
	ApplyTax              bool
	Mode                  Mode
	ReverseCharge         bool
	TaxShiftedToRecipient bool
}

// ResolveRule resolves GST behavior from the parties' state codes and the
// draft flags. Composition scheme suppresses output tax without changing
// the supply classification; export is zero-rated.
func ResolveRule(sellerState, buyerState string, exportFlag, reverseChargeFlag, compositionFlag bool) Rule {
	supply := SupplyInter
	if sellerState == buyerState {
		supply = SupplyIntra
	}

	if compositionFlag {
		return Rule{
			Supply:                supply,
			ApplyTax:              false,
			Mode:                  modeForSupply(supply),
			ReverseCharge:         reverseChargeFlag,
			TaxShiftedToRecipient: reverseChargeFlag,
		}
	}
	if exportFlag {
		return Rule{
			Supply:                SupplyExport,
			ApplyTax:              false,
			Mode:                  ModeZero,
			ReverseCharge:         reverseChargeFlag,
			TaxShiftedToRecipient: reverseChargeFlag,
		}
	}
	return Rule{
		Supply:                supply,
		ApplyTax:              true,
		Mode:                  modeForSupply(supply),
		ReverseCharge:         reverseChargeFlag,
		TaxShiftedToRecipient: reverseChargeFlag,
	}
}

func modeForSupply(s SupplyType) Mode {
	if s == SupplyIntra {
		return ModeCGSTSGST
	}
	return ModeIGST
}
