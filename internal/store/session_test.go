package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstdraft-dev/gstdraft/internal/model"
)

func TestInvoice_RoundTrip(t *testing.T) {
	s, _ := newStore(t)

	_, ok := s.LoadInvoice()
	assert.False(t, ok)

	inv := model.Invoice{ID: 11, InvoiceNumber: "2025-26/27/000001", Status: model.StatusFinal, GrandTotal: 224.20}
	require.NoError(t, s.SaveInvoice(inv))

	got, ok := s.LoadInvoice()
	require.True(t, ok)
	assert.Equal(t, inv, got)
}

func TestInvoice_Clear(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.SaveInvoice(model.Invoice{ID: 1}))
	require.NoError(t, s.ClearInvoice())

	_, ok := s.LoadInvoice()
	assert.False(t, ok)

	// Clearing again is fine.
	require.NoError(t, s.ClearInvoice())
}

func TestInvoice_CorruptFileIgnored(t *testing.T) {
	s, dir := newStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, InvoiceFile), []byte("{not json"), 0o644))

	_, ok := s.LoadInvoice()
	assert.False(t, ok)
}

func TestDirectorySnapshots_RoundTrip(t *testing.T) {
	s, _ := newStore(t)

	assert.Nil(t, s.Sellers())
	assert.Nil(t, s.Buyers())

	sellers := []model.Party{{ID: 1, Name: "Umbra Traders", GSTIN: "27AAPFU0939F1ZV", StateCode: "27"}}
	buyers := []model.Party{{ID: 2, Name: "Tania Steel", GSTIN: "29AABCT1332L1ZT", StateCode: "29"}}
	require.NoError(t, s.SaveSellers(sellers))
	require.NoError(t, s.SaveBuyers(buyers))

	assert.Equal(t, sellers, s.Sellers())
	assert.Equal(t, buyers, s.Buyers())
}

func TestDirectorySnapshots_Replaced(t *testing.T) {
	s, _ := newStore(t)
	require.NoError(t, s.SaveSellers([]model.Party{{ID: 1}, {ID: 2}}))
	require.NoError(t, s.SaveSellers([]model.Party{{ID: 3}}))

	got := s.Sellers()
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)
}
