package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gstdraft-dev/gstdraft/internal/model"
)

// Submit posts the draft to create an invoice resource. Each attempt carries
// a fresh random idempotency key, returned alongside the invoice so the
// caller can audit which attempt produced it; a retried attempt with the
// same key is not duplicated server side. The draft itself is untouched, so
// a failed submission can simply be retried.
func (c *Client) Submit(ctx context.Context, d model.InvoiceDraft) (model.Invoice, string, error) {
	key := uuid.NewString()
	var inv model.Invoice
	err := c.do(ctx, http.MethodPost, "/invoices", map[string]string{"Idempotency-Key": key}, d, &inv)
	if err != nil {
		return model.Invoice{}, key, err
	}
	c.log.WithFields(logrus.Fields{
		"invoice_id":      inv.ID,
		"invoice_number":  inv.InvoiceNumber,
		"idempotency_key": key,
	}).Debug("invoice submitted")
	return inv, key, nil
}

// Finalize transitions an invoice to FINAL status. Irreversible.
func (c *Client) Finalize(ctx context.Context, invoiceID int) (model.Invoice, error) {
	var inv model.Invoice
	path := fmt.Sprintf("/invoices/%d/finalize", invoiceID)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &inv); err != nil {
		return model.Invoice{}, err
	}
	return inv, nil
}
