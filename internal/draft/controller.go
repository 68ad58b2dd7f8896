// Package draft owns the in-progress invoice: mutation commands, field
// validation, the derived tax preview, and debounced persistence.
package draft

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gstdraft-dev/gstdraft/internal/debounce"
	"github.com/gstdraft-dev/gstdraft/internal/model"
	"github.com/gstdraft-dev/gstdraft/internal/parties"
	"github.com/gstdraft-dev/gstdraft/internal/store"
	"github.com/gstdraft-dev/gstdraft/internal/tax"
)

// ErrFinalized is returned by mutation commands once the submitted invoice
// reached FINAL status. The draft is left unchanged.
var ErrFinalized = errors.New("invoice is locked after finalization")

// Controller applies mutation commands to the in-memory draft, re-derives
// validation errors and the tax preview synchronously after each one, and
// hands the new draft to the debounce scheduler for persistence. It expects
// exactly one mutator: commands are not safe for concurrent use.
type Controller struct {
	store store.Store
	sched *debounce.Scheduler[model.InvoiceDraft]
	log   *logrus.Logger

	draft   model.InvoiceDraft
	errs    Errors
	preview tax.Preview

	sellers *parties.Service
	buyers  *parties.Service

	invoice *model.Invoice
}

// NewController loads the persisted draft (or the fixed default) and derives
// the initial validation and preview state. A non-positive quiet period
// falls back to the engine default.
func NewController(st store.Store, quiet time.Duration, log *logrus.Logger) *Controller {
	if log == nil {
		log = logrus.New()
	}
	c := &Controller{
		store:   st,
		log:     log,
		sellers: parties.NewService(nil),
		buyers:  parties.NewService(nil),
	}
	c.sched = debounce.NewScheduler(quiet, c.persist)
	c.draft = st.Load()
	if inv, ok := st.LoadInvoice(); ok {
		c.invoice = &inv
	}
	c.rederive()
	return c
}

func (c *Controller) persist(d model.InvoiceDraft) {
	// Autosave is best effort: a failed write costs at most the unsaved
	// tail of edits, never the session.
	if err := c.store.Save(d); err != nil {
		c.log.WithError(err).Warn("draft autosave failed")
	}
}

func (c *Controller) rederive() {
	c.errs = Validate(c.draft)

	var seller, buyer *model.Party
	if p, ok := c.sellers.Get(c.draft.SellerID); ok {
		seller = &p
	}
	if p, ok := c.buyers.Get(c.draft.BuyerID); ok {
		buyer = &p
	}
	mode := tax.ResolveMode(seller, buyer, c.draft.ExportFlag)
	c.preview = tax.ComputePreview(c.draft, mode)
}

func (c *Controller) mutate(apply func(*model.InvoiceDraft) error) error {
	if c.Finalized() {
		return ErrFinalized
	}
	if err := apply(&c.draft); err != nil {
		return err
	}
	c.rederive()
	c.sched.Schedule(c.draft.Clone())
	return nil
}

// AddItem appends a blank line item.
func (c *Controller) AddItem() error {
	return c.mutate(func(d *model.InvoiceDraft) error {
		d.Items = append(d.Items, model.BlankItem())
		return nil
	})
}

// RemoveItem deletes the item at index. Removing the last remaining item
// replaces it with a fresh blank item; the list is never empty.
func (c *Controller) RemoveItem(index int) error {
	return c.mutate(func(d *model.InvoiceDraft) error {
		if index < 0 || index >= len(d.Items) {
			return fmt.Errorf("no item at index %d", index)
		}
		d.Items = append(d.Items[:index], d.Items[index+1:]...)
		if len(d.Items) == 0 {
			d.Items = []model.LineItem{model.BlankItem()}
		}
		return nil
	})
}

// UpdateItem sets one field of the item at index. Field names follow the
// serialized draft ("name", "hsn_code", "quantity", "unit_price",
// "discount", "gst_rate").
func (c *Controller) UpdateItem(index int, field, value string) error {
	return c.mutate(func(d *model.InvoiceDraft) error {
		if index < 0 || index >= len(d.Items) {
			return fmt.Errorf("no item at index %d", index)
		}
		item := &d.Items[index]
		switch field {
		case "name":
			item.Name = value
		case "hsn_code":
			item.HSNCode = value
		case "quantity":
			return setFloat(&item.Quantity, field, value)
		case "unit_price":
			return setFloat(&item.UnitPrice, field, value)
		case "discount":
			return setFloat(&item.Discount, field, value)
		case "gst_rate":
			return setFloat(&item.GSTRate, field, value)
		default:
			return fmt.Errorf("unknown item field %q", field)
		}
		return nil
	})
}

// UpdateField sets one top-level draft field by its serialized name.
func (c *Controller) UpdateField(field, value string) error {
	return c.mutate(func(d *model.InvoiceDraft) error {
		switch field {
		case "seller_id":
			return setInt(&d.SellerID, field, value)
		case "buyer_id":
			return setInt(&d.BuyerID, field, value)
		case "invoice_type":
			t := model.InvoiceType(value)
			if t != model.InvoiceTypeB2B && t != model.InvoiceTypeB2C {
				return fmt.Errorf("invoice_type must be B2B or B2C, got %q", value)
			}
			d.InvoiceType = t
		case "reverse_charge":
			return setBool(&d.ReverseCharge, field, value)
		case "export_flag":
			return setBool(&d.ExportFlag, field, value)
		case "composition_flag":
			return setBool(&d.CompositionFlag, field, value)
		case "logo_base64":
			d.LogoBase64 = value
		case "terms_conditions":
			d.TermsConditions = value
		case "signature_name":
			d.SignatureName = value
		default:
			return fmt.Errorf("unknown draft field %q", field)
		}
		return nil
	})
}

// Reset clears persisted storage and reinstates the fixed default draft
// immediately, bypassing the debounce window. Any not-yet-written pending
// save is dropped so it cannot resurrect the old draft. Reset also unlocks
// a finalized session: it starts the next invoice.
func (c *Controller) Reset() error {
	c.sched.Cancel()
	if err := c.store.Clear(); err != nil {
		return err
	}
	if err := c.store.ClearInvoice(); err != nil {
		return err
	}
	c.draft = model.DefaultDraft()
	c.invoice = nil
	c.rederive()
	return nil
}

// SetSellers replaces the seller directory cache and re-derives the tax
// mode. Directory refreshes never trigger persistence.
func (c *Controller) SetSellers(records []model.Party) {
	c.sellers = parties.NewService(records)
	c.rederive()
}

// SetBuyers replaces the buyer directory cache and re-derives the tax mode.
func (c *Controller) SetBuyers(records []model.Party) {
	c.buyers = parties.NewService(records)
	c.rederive()
}

// AttachInvoice records the invoice resource returned by submission or
// finalize and persists it, so a FINAL status keeps rejecting mutation
// commands in later sessions too.
func (c *Controller) AttachInvoice(inv model.Invoice) {
	c.invoice = &inv
	if err := c.store.SaveInvoice(inv); err != nil {
		c.log.WithError(err).Warn("saving invoice state failed")
	}
}

// Invoice returns the attached invoice resource, if any.
func (c *Controller) Invoice() (model.Invoice, bool) {
	if c.invoice == nil {
		return model.Invoice{}, false
	}
	return *c.invoice, true
}

// Finalized reports whether the attached invoice reached FINAL status.
func (c *Controller) Finalized() bool {
	return c.invoice != nil && c.invoice.Status == model.StatusFinal
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() model.InvoiceDraft {
	return c.draft.Clone()
}

// ValidationErrors returns the error map derived from the last mutation.
func (c *Controller) ValidationErrors() Errors {
	return c.errs
}

// Preview returns the tax breakdown derived from the last mutation.
func (c *Controller) Preview() tax.Preview {
	return c.preview
}

// Seller resolves the current seller record from the directory cache.
func (c *Controller) Seller() (model.Party, bool) {
	return c.sellers.Get(c.draft.SellerID)
}

// Buyer resolves the current buyer record from the directory cache.
func (c *Controller) Buyer() (model.Party, bool) {
	return c.buyers.Get(c.draft.BuyerID)
}

// CanSubmit reports whether local validation allows submission.
func (c *Controller) CanSubmit() bool {
	return c.errs.Valid()
}

// Flush writes any pending autosave immediately.
func (c *Controller) Flush() {
	c.sched.Flush()
}

// Close flushes the pending autosave and stops the scheduler.
func (c *Controller) Close() {
	c.sched.Flush()
	c.sched.Stop()
}

func setFloat(dst *float64, field, value string) error {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parsing %s %q: %w", field, value, err)
	}
	*dst = f
	return nil
}

func setInt(dst *int, field, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parsing %s %q: %w", field, value, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, field, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parsing %s %q: %w", field, value, err)
	}
	*dst = b
	return nil
}
