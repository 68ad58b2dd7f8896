// Package store persists the single in-progress invoice draft and the
// session state derived from it.
package store

import "github.com/gstdraft-dev/gstdraft/internal/model"

// Store is a versioned key-value home for the draft and its attached
// invoice. Load never fails: a missing, corrupt, or structurally
// incompatible value yields the fixed default draft instead of an error, so
// an old schema is never partially merged into the current one. The invoice
// half carries the submitted resource across process boundaries: once a
// FINAL invoice is saved here, every later session sees the lock until
// Reset clears it together with the draft.
type Store interface {
	Load() model.InvoiceDraft
	Save(model.InvoiceDraft) error
	Clear() error

	LoadInvoice() (model.Invoice, bool)
	SaveInvoice(model.Invoice) error
	ClearInvoice() error
}
