package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gstdraft-dev/gstdraft/internal/model"
)

// InvoiceFile is the versioned key for the submitted invoice resource.
const InvoiceFile = "invoice.v1.json"

const (
	sellersFile = "sellers.v1.json"
	buyersFile  = "buyers.v1.json"
)

// LoadInvoice reads the persisted invoice resource. A missing or corrupt
// file reports no invoice.
func (s *FileStore) LoadInvoice() (model.Invoice, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, InvoiceFile))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.WithError(err).Debug("reading invoice file")
		}
		return model.Invoice{}, false
	}

	var inv model.Invoice
	if err := json.Unmarshal(data, &inv); err != nil {
		s.log.WithError(err).Debug("parsing invoice file")
		return model.Invoice{}, false
	}
	return inv, true
}

// SaveInvoice writes the submitted invoice resource.
func (s *FileStore) SaveInvoice(inv model.Invoice) error {
	return s.writeJSON(InvoiceFile, inv)
}

// ClearInvoice removes the persisted invoice. Missing file is not an error.
func (s *FileStore) ClearInvoice() error {
	err := os.Remove(filepath.Join(s.dir, InvoiceFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clearing invoice: %w", err)
	}
	return nil
}

// Sellers returns the persisted seller directory snapshot, or nil when none
// was cached yet.
func (s *FileStore) Sellers() []model.Party {
	return s.readParties(sellersFile)
}

// SaveSellers replaces the seller directory snapshot.
func (s *FileStore) SaveSellers(records []model.Party) error {
	return s.writeJSON(sellersFile, records)
}

// Buyers returns the persisted buyer directory snapshot, or nil when none
// was cached yet.
func (s *FileStore) Buyers() []model.Party {
	return s.readParties(buyersFile)
}

// SaveBuyers replaces the buyer directory snapshot.
func (s *FileStore) SaveBuyers(records []model.Party) error {
	return s.writeJSON(buyersFile, records)
}

func (s *FileStore) readParties(name string) []model.Party {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.WithError(err).Debug("reading directory snapshot")
		}
		return nil
	}

	var records []model.Party
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.WithError(err).Debug("parsing directory snapshot")
		return nil
	}
	return records
}

func (s *FileStore) writeJSON(name string, v any) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating draft dir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
