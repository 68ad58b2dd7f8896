package commands_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gstdraft-dev/gstdraft/internal/commands"
	"github.com/gstdraft-dev/gstdraft/internal/config"
	"github.com/gstdraft-dev/gstdraft/internal/model"
	"github.com/gstdraft-dev/gstdraft/internal/store"
	"github.com/gstdraft-dev/gstdraft/internal/submitlog"
)

func runGstdraft(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := commands.NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func initWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := runGstdraft(t, "init", dir)
	require.NoError(t, err)
	return dir
}

func loadDraft(t *testing.T, dir string) model.InvoiceDraft {
	t.Helper()
	return store.NewFileStore(filepath.Join(dir, "drafts"), nil).Load()
}

func TestInit_CreatesWorkspace(t *testing.T) {
	dir := initWorkspace(t)

	cfg, err := config.Load(filepath.Join(dir, "gstdraft.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 220, cfg.Draft.QuietMillis)

	// The default draft is seeded.
	_, err = os.Stat(filepath.Join(dir, "drafts", store.DraftFile))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultDraft(), loadDraft(t, dir))
}

func TestInit_APIURLFlag(t *testing.T) {
	dir := t.TempDir()
	_, err := runGstdraft(t, "init", dir, "--api-url", "https://billing.example.com/api/v1")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, "gstdraft.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "https://billing.example.com/api/v1", cfg.API.BaseURL)
}

func TestSetAndItemCommandsPersist(t *testing.T) {
	dir := initWorkspace(t)

	_, err := runGstdraft(t, "set", "seller_id", "3", "--dir", dir)
	require.NoError(t, err)
	_, err = runGstdraft(t, "item", "update", "0", "name", "Widget", "--dir", dir)
	require.NoError(t, err)
	_, err = runGstdraft(t, "item", "add", "--dir", dir)
	require.NoError(t, err)

	d := loadDraft(t, dir)
	assert.Equal(t, 3, d.SellerID)
	require.Len(t, d.Items, 2)
	assert.Equal(t, "Widget", d.Items[0].Name)
}

func TestItemRemove_LastLeavesBlank(t *testing.T) {
	dir := initWorkspace(t)

	_, err := runGstdraft(t, "item", "update", "0", "name", "Widget", "--dir", dir)
	require.NoError(t, err)
	_, err = runGstdraft(t, "item", "remove", "0", "--dir", dir)
	require.NoError(t, err)

	d := loadDraft(t, dir)
	require.Len(t, d.Items, 1)
	assert.Equal(t, model.BlankItem(), d.Items[0])
}

func TestShow_PrintsPreviewAndErrors(t *testing.T) {
	dir := initWorkspace(t)

	_, err := runGstdraft(t, "item", "update", "0", "quantity", "2", "--dir", dir)
	require.NoError(t, err)
	_, err = runGstdraft(t, "item", "update", "0", "unit_price", "100", "--dir", dir)
	require.NoError(t, err)
	_, err = runGstdraft(t, "item", "update", "0", "discount", "10", "--dir", dir)
	require.NoError(t, err)

	out, err := runGstdraft(t, "show", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "taxable=190.00")
	assert.Contains(t, out, "grand=224.20")
	assert.Contains(t, out, "Seller is required")
	assert.Contains(t, out, "Two Hundred Twenty Four Rupees and Twenty Paise Only")
}

func TestReset_RestoresDefault(t *testing.T) {
	dir := initWorkspace(t)

	_, err := runGstdraft(t, "set", "terms_conditions", "Net 30", "--dir", dir)
	require.NoError(t, err)
	_, err = runGstdraft(t, "reset", "--dir", dir)
	require.NoError(t, err)

	assert.Equal(t, model.DefaultDraft(), loadDraft(t, dir))
}

func TestSet_InvalidField(t *testing.T) {
	dir := initWorkspace(t)
	_, err := runGstdraft(t, "set", "nope", "x", "--dir", dir)
	assert.Error(t, err)
}

func TestCommandsOutsideWorkspace(t *testing.T) {
	dir := t.TempDir() // no init
	_, err := runGstdraft(t, "show", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a gstdraft workspace")
}

func completeDraft(t *testing.T, dir string) {
	t.Helper()
	for _, args := range [][]string{
		{"set", "seller_id", "1"},
		{"set", "buyer_id", "2"},
		{"item", "update", "0", "name", "Widget"},
		{"item", "update", "0", "hsn_code", "8473"},
		{"item", "update", "0", "unit_price", "100"},
	} {
		_, err := runGstdraft(t, append(args, "--dir", dir)...)
		require.NoError(t, err)
	}
}

func pointWorkspaceAt(t *testing.T, dir, url string) {
	t.Helper()
	cfg, err := config.Load(filepath.Join(dir, "gstdraft.yaml"))
	require.NoError(t, err)
	cfg.API.BaseURL = url
	require.NoError(t, config.Save(filepath.Join(dir, "gstdraft.yaml"), cfg))
}

func TestSubmit_BlockedByValidation(t *testing.T) {
	dir := initWorkspace(t)

	_, err := runGstdraft(t, "submit", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation errors")
}

func TestSubmitAndFinalizeFlow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/invoices":
			assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
			_ = json.NewEncoder(w).Encode(model.Invoice{
				ID: 11, InvoiceNumber: "2025-26/27/000001", Status: model.StatusDraft, GrandTotal: 118,
			})
		case "/invoices/11/finalize":
			_ = json.NewEncoder(w).Encode(model.Invoice{
				ID: 11, InvoiceNumber: "2025-26/27/000001", Status: model.StatusFinal,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	dir := initWorkspace(t)
	completeDraft(t, dir)
	pointWorkspaceAt(t, dir, srv.URL)

	out, err := runGstdraft(t, "submit", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2025-26/27/000001")
	assert.Contains(t, out, "FY 2025-26, state 27, sequence 1")

	// The audit log recorded the attempt with its idempotency key.
	last, found, err := submitlog.LastSubmitted(dir)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 11, last.InvoiceID)
	assert.NotEmpty(t, last.IdempotencyKey)

	// Finalize picks up the last submitted invoice.
	out, err = runGstdraft(t, "finalize", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "FINAL")

	entries, err := submitlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, submitlog.ActionFinalize, entries[1].Action)
	assert.Equal(t, "FINAL", entries[1].Status)
}

func TestSubmit_ServerDetailSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Buyer GSTIN required for B2B"})
	}))
	defer srv.Close()

	dir := initWorkspace(t)
	completeDraft(t, dir)
	before := loadDraft(t, dir)
	pointWorkspaceAt(t, dir, srv.URL)

	_, err := runGstdraft(t, "submit", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Buyer GSTIN required for B2B")

	// Draft preserved unchanged for retry.
	assert.Equal(t, before, loadDraft(t, dir))

	entries, readErr := submitlog.Read(dir)
	require.NoError(t, readErr)
	require.Len(t, entries, 1)
	assert.Equal(t, "error", entries[0].Status)
}

func TestFinalize_LocksDraftAcrossInvocations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/invoices":
			_ = json.NewEncoder(w).Encode(model.Invoice{
				ID: 11, InvoiceNumber: "2025-26/27/000001", Status: model.StatusDraft,
			})
		case "/invoices/11/finalize":
			_ = json.NewEncoder(w).Encode(model.Invoice{
				ID: 11, InvoiceNumber: "2025-26/27/000001", Status: model.StatusFinal,
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	dir := initWorkspace(t)
	completeDraft(t, dir)
	pointWorkspaceAt(t, dir, srv.URL)

	_, err := runGstdraft(t, "submit", "--dir", dir)
	require.NoError(t, err)
	_, err = runGstdraft(t, "finalize", "--dir", dir)
	require.NoError(t, err)

	// Every later invocation sees the FINAL invoice and rejects mutations.
	before := loadDraft(t, dir)
	for _, args := range [][]string{
		{"set", "seller_id", "99"},
		{"item", "add"},
		{"item", "update", "0", "name", "Changed"},
		{"item", "remove", "0"},
	} {
		_, err = runGstdraft(t, append(args, "--dir", dir)...)
		require.Error(t, err, "%v must be rejected after finalize", args)
		assert.Contains(t, err.Error(), "locked after finalization")
	}
	assert.Equal(t, before, loadDraft(t, dir), "draft must be unchanged after rejected commands")

	// Reset unlocks and starts the next invoice.
	_, err = runGstdraft(t, "reset", "--dir", dir)
	require.NoError(t, err)
	_, err = runGstdraft(t, "set", "seller_id", "1", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, 1, loadDraft(t, dir).SellerID)
}

func TestLookup_CachesDirectoriesForTaxMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sellers":
			_ = json.NewEncoder(w).Encode([]model.Party{
				{ID: 1, Name: "Umbra Traders", GSTIN: "27AAPFU0939F1ZV", StateCode: "27"},
			})
		case "/buyers":
			_ = json.NewEncoder(w).Encode([]model.Party{
				{ID: 2, Name: "Pune Retail", GSTIN: "27AABCT1332L1ZV", StateCode: "27"},
				{ID: 3, Name: "Tania Steel", GSTIN: "29AABCT1332L1ZT", StateCode: "29"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	dir := initWorkspace(t)
	completeDraft(t, dir)
	pointWorkspaceAt(t, dir, srv.URL)

	_, err := runGstdraft(t, "lookup", "sellers", "--dir", dir)
	require.NoError(t, err)
	_, err = runGstdraft(t, "lookup", "buyers", "--dir", dir)
	require.NoError(t, err)

	// Same-state pair resolves to the CGST/SGST split.
	out, err := runGstdraft(t, "show", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "supply: intra")
	assert.Contains(t, out, "CGST")
	assert.NotContains(t, out, "IGST")

	// Switching to the other-state buyer flips the mode.
	_, err = runGstdraft(t, "set", "buyer_id", "3", "--dir", dir)
	require.NoError(t, err)
	out, err = runGstdraft(t, "show", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "supply: inter")
	assert.Contains(t, out, "IGST")
	assert.NotContains(t, out, "CGST")
}

func TestFinalize_NoSubmissionOnRecord(t *testing.T) {
	dir := initWorkspace(t)
	_, err := runGstdraft(t, "finalize", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no submitted invoice")
}
