package commands

import (
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/gstdraft-dev/gstdraft/internal/gst"
	"github.com/gstdraft-dev/gstdraft/internal/tax"
	"github.com/gstdraft-dev/gstdraft/internal/words"
)

func newShowCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current draft, validation errors, and tax preview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")

	return cmd
}

func runShow(cmd *cobra.Command, dir string) error {
	_, ctrl, err := openWorkspace(dir)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	d := ctrl.Draft()
	p := ctrl.Preview()

	cmd.Printf("Invoice draft (%s, FY %s)\n", d.InvoiceType, gst.FinancialYear(time.Now()))
	cmd.Printf("  seller_id: %d  buyer_id: %d\n", d.SellerID, d.BuyerID)
	cmd.Printf("  reverse_charge: %v  export: %v  composition: %v\n",
		d.ReverseCharge, d.ExportFlag, d.CompositionFlag)

	if seller, ok := ctrl.Seller(); ok {
		if buyer, ok := ctrl.Buyer(); ok {
			rule := tax.ResolveRule(seller.StateCode, buyer.StateCode,
				d.ExportFlag, d.ReverseCharge, d.CompositionFlag)
			cmd.Printf("  supply: %s", rule.Supply)
			if !rule.ApplyTax {
				cmd.Printf("  (no output tax)")
			}
			if rule.TaxShiftedToRecipient {
				cmd.Printf("  (tax payable by recipient)")
			}
			cmd.Println()
		}
	}

	cmd.Println("Items:")
	for i, item := range d.Items {
		line := p.Lines[i]
		cmd.Printf("  %d. %-20s hsn=%-8s qty=%g price=%.2f disc=%.2f rate=%g%%  taxable=%.2f tax=%.2f total=%.2f\n",
			i, item.Name, item.HSNCode, item.Quantity, item.UnitPrice, item.Discount, item.GSTRate,
			line.Taxable, line.Tax, line.Total)
	}

	cmd.Printf("Totals: taxable=%.2f tax=%.2f grand=%.2f\n", p.TotalTaxable, p.TotalTax, p.GrandTotal)
	switch p.Mode {
	case tax.ModeCGSTSGST:
		cmd.Printf("  CGST %.2f + SGST %.2f (intra-state)\n", p.CGST, p.SGST)
	case tax.ModeIGST:
		cmd.Printf("  IGST %.2f (inter-state)\n", p.IGST)
	case tax.ModeZero:
		cmd.Println("  zero-rated (export)")
	}
	cmd.Printf("  %s\n", words.Amount(p.GrandTotal))

	if errs := ctrl.ValidationErrors(); !errs.Valid() {
		cmd.Println("Validation errors:")
		paths := make([]string, 0, len(errs))
		for path := range errs {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			cmd.Printf("  %s: %s\n", path, errs[path])
		}
	}

	return nil
}
