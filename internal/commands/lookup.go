package commands

import (
	"context"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/gstdraft-dev/gstdraft/internal/client"
	"github.com/gstdraft-dev/gstdraft/internal/gst"
	"github.com/gstdraft-dev/gstdraft/internal/model"
	"github.com/gstdraft-dev/gstdraft/internal/store"
)

const lookupTimeout = 10 * time.Second

func newLookupCommand() *cobra.Command {
	lookupCmd := &cobra.Command{
		Use:   "lookup",
		Short: "Query the external directories",
	}
	lookupCmd.AddCommand(newLookupPartiesCommand("sellers", "List the seller directory"))
	lookupCmd.AddCommand(newLookupPartiesCommand("buyers", "List the buyer directory"))
	lookupCmd.AddCommand(newLookupHSNCommand())
	return lookupCmd
}

func newLookupPartiesCommand(kind, short string) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   kind,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigOnly(dir)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), lookupTimeout)
			defer cancel()

			log := newLogger()
			c := client.New(cfg.API.BaseURL, cfg.Token(), log)
			var records []model.Party
			if kind == "sellers" {
				records, err = c.Sellers(ctx)
			} else {
				records, err = c.Buyers(ctx)
			}
			if err != nil {
				return err
			}

			// Cache the snapshot so later commands resolve the tax mode
			// from it.
			st := store.NewFileStore(filepath.Join(dir, cfg.Draft.DataDir), log)
			if kind == "sellers" {
				err = st.SaveSellers(records)
			} else {
				err = st.SaveBuyers(records)
			}
			if err != nil {
				return err
			}

			for _, p := range records {
				note := ""
				switch {
				case !gst.IsValidGSTIN(p.GSTIN):
					note = "  !! invalid GSTIN"
				case gst.StateCode(p.GSTIN) != p.StateCode:
					note = "  !! GSTIN state code mismatch"
				}
				cmd.Printf("%4d  %-24s %-16s state=%s%s\n", p.ID, p.Name, p.GSTIN, p.StateCode, note)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")

	return cmd
}

func newLookupHSNCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "hsn <partial-code>",
		Short: "Suggest HSN codes for a partial code (2+ characters)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigOnly(dir)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), lookupTimeout)
			defer cancel()

			c := client.New(cfg.API.BaseURL, cfg.Token(), newLogger())
			suggestions, err := c.SuggestHSN(ctx, args[0])
			if err != nil {
				// Suggestion lookups are hints; a failure clears the list
				// and editing continues.
				cmd.PrintErrf("hsn lookup failed: %v\n", err)
				return nil
			}

			for _, s := range suggestions {
				cmd.Printf("%-8s %s\n", s.Code, s.Description)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")

	return cmd
}
