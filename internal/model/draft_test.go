package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDraft(t *testing.T) {
	d := DefaultDraft()
	assert.Equal(t, InvoiceTypeB2B, d.InvoiceType)
	assert.Equal(t, "Authorized Signatory", d.SignatureName)
	assert.Len(t, d.Items, 1)
	assert.Equal(t, BlankItem(), d.Items[0])
}

func TestBlankItem(t *testing.T) {
	item := BlankItem()
	assert.Equal(t, 1.0, item.Quantity)
	assert.Equal(t, 18.0, item.GSTRate)
	assert.Empty(t, item.Name)
	assert.Empty(t, item.HSNCode)
}

func TestClone_Independent(t *testing.T) {
	d := DefaultDraft()
	d.Items[0].Name = "Widget"

	c := d.Clone()
	c.Items[0].Name = "Changed"
	c.Items = append(c.Items, BlankItem())

	assert.Equal(t, "Widget", d.Items[0].Name)
	assert.Len(t, d.Items, 1)
}
