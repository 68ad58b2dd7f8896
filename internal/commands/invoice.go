package commands

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/gstdraft-dev/gstdraft/internal/client"
	"github.com/gstdraft-dev/gstdraft/internal/gst"
	"github.com/gstdraft-dev/gstdraft/internal/model"
	"github.com/gstdraft-dev/gstdraft/internal/submitlog"
	"github.com/gstdraft-dev/gstdraft/internal/words"
)

func newSubmitCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit the draft to the invoice service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd, dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")

	return cmd
}

func runSubmit(cmd *cobra.Command, dir string) error {
	cfg, ctrl, err := openWorkspace(dir)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	// Submission is blocked locally before any network call.
	if !ctrl.CanSubmit() {
		errs := ctrl.ValidationErrors()
		paths := make([]string, 0, len(errs))
		for path := range errs {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			cmd.PrintErrf("  %s: %s\n", path, errs[path])
		}
		return fmt.Errorf("draft has %d validation errors", len(errs))
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), lookupTimeout)
	defer cancel()

	c := client.New(cfg.API.BaseURL, cfg.Token(), newLogger())
	inv, key, err := c.Submit(ctx, ctrl.Draft())

	entry := submitlog.Entry{
		Timestamp:      time.Now().UTC(),
		Action:         submitlog.ActionSubmit,
		IdempotencyKey: key,
	}
	if err != nil {
		entry.Status = "error"
		entry.Detail = err.Error()
		if logErr := submitlog.Append(dir, []submitlog.Entry{entry}); logErr != nil {
			cmd.PrintErrf("recording submission: %v\n", logErr)
		}
		// The draft is preserved unchanged so the operator can retry.
		return fmt.Errorf("submission failed: %w", err)
	}

	entry.InvoiceID = inv.ID
	entry.InvoiceNumber = inv.InvoiceNumber
	entry.Status = string(inv.Status)
	if logErr := submitlog.Append(dir, []submitlog.Entry{entry}); logErr != nil {
		cmd.PrintErrf("recording submission: %v\n", logErr)
	}

	ctrl.AttachInvoice(inv)
	cmd.Printf("Submitted invoice %s (id %d, status %s)\n", inv.InvoiceNumber, inv.ID, inv.Status)
	if fy, state, seq, err := gst.ParseInvoiceNumber(inv.InvoiceNumber); err == nil {
		cmd.Printf("  FY %s, state %s, sequence %d\n", fy, state, seq)
	}
	if inv.GrandTotal > 0 {
		cmd.Printf("  %.2f (%s)\n", inv.GrandTotal, words.Amount(inv.GrandTotal))
	}
	return nil
}

func newFinalizeCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "finalize [invoice-id]",
		Short: "Finalize a submitted invoice (irreversible)",
		Long: `Finalize transitions a submitted invoice to FINAL status and locks the
draft from further edits. Without an argument, the most recently submitted
invoice from the submission log is finalized.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFinalize(cmd, dir, args)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "workspace directory")

	return cmd
}

func runFinalize(cmd *cobra.Command, dir string, args []string) error {
	cfg, ctrl, err := openWorkspace(dir)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	var invoiceID int
	if len(args) == 1 {
		invoiceID, err = strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid invoice id %q: %w", args[0], err)
		}
	} else {
		last, found, err := submitlog.LastSubmitted(dir)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no submitted invoice on record; pass an invoice id")
		}
		invoiceID = last.InvoiceID
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), lookupTimeout)
	defer cancel()

	c := client.New(cfg.API.BaseURL, cfg.Token(), newLogger())
	inv, err := c.Finalize(ctx, invoiceID)

	entry := submitlog.Entry{
		Timestamp: time.Now().UTC(),
		Action:    submitlog.ActionFinalize,
		InvoiceID: invoiceID,
	}
	if err != nil {
		entry.Status = "error"
		entry.Detail = err.Error()
		if logErr := submitlog.Append(dir, []submitlog.Entry{entry}); logErr != nil {
			cmd.PrintErrf("recording finalize: %v\n", logErr)
		}
		return fmt.Errorf("finalize failed: %w", err)
	}

	entry.InvoiceNumber = inv.InvoiceNumber
	entry.Status = string(inv.Status)
	if logErr := submitlog.Append(dir, []submitlog.Entry{entry}); logErr != nil {
		cmd.PrintErrf("recording finalize: %v\n", logErr)
	}

	ctrl.AttachInvoice(inv)
	if inv.Status == model.StatusFinal {
		cmd.Printf("Invoice %d is FINAL; the draft is locked. Run \"gstdraft reset\" to start the next one.\n", inv.ID)
	} else {
		cmd.Printf("Invoice %d status: %s\n", inv.ID, inv.Status)
	}
	return nil
}
