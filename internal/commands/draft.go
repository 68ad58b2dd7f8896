package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gstdraft-dev/gstdraft/internal/draft"
)

func newSetCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Set a top-level draft field",
		Long: `Set a top-level draft field by its serialized name:
seller_id, buyer_id, invoice_type, reverse_charge, export_flag,
composition_flag, logo_base64, terms_conditions, signature_name.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, dir, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")

	return cmd
}

func runSet(cmd *cobra.Command, dir, field, value string) error {
	_, ctrl, err := openWorkspace(dir)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	if err := ctrl.UpdateField(field, value); err != nil {
		return err
	}
	reportState(cmd, ctrl)
	return nil
}

func newItemCommand() *cobra.Command {
	itemCmd := &cobra.Command{
		Use:   "item",
		Short: "Line item operations",
	}
	itemCmd.AddCommand(newItemAddCommand())
	itemCmd.AddCommand(newItemRemoveCommand())
	itemCmd.AddCommand(newItemUpdateCommand())
	return itemCmd
}

func newItemAddCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a blank line item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ctrl, err := openWorkspace(dir)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			if err := ctrl.AddItem(); err != nil {
				return err
			}
			reportState(cmd, ctrl)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")

	return cmd
}

func newItemRemoveCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "remove <index>",
		Short: "Remove the line item at index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			_, ctrl, err := openWorkspace(dir)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			if err := ctrl.RemoveItem(index); err != nil {
				return err
			}
			reportState(cmd, ctrl)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")

	return cmd
}

func newItemUpdateCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "update <index> <field> <value>",
		Short: "Set one field of a line item",
		Long: `Set one field of the line item at index. Fields: name, hsn_code,
quantity, unit_price, discount, gst_rate.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			_, ctrl, err := openWorkspace(dir)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			if err := ctrl.UpdateItem(index, args[1], args[2]); err != nil {
				return err
			}
			reportState(cmd, ctrl)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")

	return cmd
}

func newResetCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the persisted draft and start over",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ctrl, err := openWorkspace(dir)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			if err := ctrl.Reset(); err != nil {
				return err
			}
			cmd.Println("Draft reset to defaults")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")

	return cmd
}

// reportState prints the one-line outcome of a mutation: fresh totals plus
// how many fields still fail validation.
func reportState(cmd *cobra.Command, ctrl *draft.Controller) {
	p := ctrl.Preview()
	cmd.Printf("taxable=%.2f tax=%.2f grand=%.2f", p.TotalTaxable, p.TotalTax, p.GrandTotal)
	if errs := ctrl.ValidationErrors(); !errs.Valid() {
		cmd.Printf("  (%d validation errors)", len(errs))
	}
	cmd.Println()
}
