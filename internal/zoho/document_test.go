package zoho

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvoiceNested(t *testing.T) {
	payload := []byte(`{
		"invoice": {
			"invoice_number": "INV-000005",
			"customer_name": "Acme Ltd",
			"date": "2024-03-01",
			"total": 118.0,
			"line_items": [{"name": "Widget", "rate": 118, "quantity": 1}],
			"custom_field_hash": {"cf_tin": "120732779", "cf_customer_tin": 998000003}
		}
	}`)

	doc, err := ParseInvoice(payload)
	require.NoError(t, err)
	assert.Equal(t, DocumentTypeInvoice, doc.Type)
	assert.Equal(t, "INV-000005", doc.Number())
	assert.Equal(t, "120732779", doc.CustomField(FieldBusinessTIN))
	assert.Equal(t, "998000003", doc.CustomerTIN())
	assert.Len(t, doc.LineItems, 1)
}

func TestParseInvoiceFlat(t *testing.T) {
	payload := []byte(`{"invoice_number": "INV-1", "line_items": []}`)
	doc, err := ParseInvoice(payload)
	require.NoError(t, err)
	assert.Equal(t, "INV-1", doc.Number())
}

func TestParseCreditNote(t *testing.T) {
	payload := []byte(`{
		"creditnote": {
			"creditnote_number": "CN-00042",
			"invoices_credited": [{"invoice_id": "9", "invoice_number": "INV-00009"}],
			"line_items": [{"name": "Refund", "rate": 59, "quantity": 1}]
		}
	}`)
	doc, err := ParseCreditNote(payload)
	require.NoError(t, err)
	assert.Equal(t, DocumentTypeCreditNote, doc.Type)
	assert.Equal(t, "CN-00042", doc.Number())
	require.Len(t, doc.InvoicesCredited, 1)
	assert.Equal(t, "INV-00009", doc.InvoicesCredited[0].InvoiceNumber)
}

func TestCustomFieldArrayFallback(t *testing.T) {
	payload := []byte(`{
		"invoice_number": "INV-2",
		"custom_fields": [
			{"api_name": "cf_purchase_code", "value": "708955"},
			{"api_name": "cf_custtin", "value": "999000111"}
		]
	}`)
	doc, err := ParseInvoice(payload)
	require.NoError(t, err)
	assert.Equal(t, "708955", doc.CustomField(FieldPurchaseCode))
	assert.Equal(t, "999000111", doc.CustomerTIN())
	assert.Equal(t, "", doc.CustomField(FieldBusinessTIN))
}

func TestCustomFieldHashWinsOverArray(t *testing.T) {
	payload := []byte(`{
		"invoice_number": "INV-3",
		"custom_field_hash": {"cf_tin": "111111111"},
		"custom_fields": [{"api_name": "cf_tin", "value": "222222222"}]
	}`)
	doc, err := ParseInvoice(payload)
	require.NoError(t, err)
	assert.Equal(t, "111111111", doc.CustomField(FieldBusinessTIN))
}

func TestResolveTaxRate(t *testing.T) {
	rate := func(v float64) *float64 { return &v }

	explicit := LineItem{TaxRate: rate(0)}
	got, ok := explicit.ResolveTaxRate()
	assert.True(t, ok)
	assert.Equal(t, 0.0, got)

	byPercentage := LineItem{TaxPercentage: rate(16)}
	got, ok = byPercentage.ResolveTaxRate()
	assert.True(t, ok)
	assert.Equal(t, 16.0, got)

	byCategory := LineItem{TaxCategory: "a"}
	got, ok = byCategory.ResolveTaxRate()
	assert.True(t, ok)
	assert.Equal(t, 0.0, got)

	fallback := LineItem{}
	got, ok = fallback.ResolveTaxRate()
	assert.False(t, ok)
	assert.Equal(t, 18.0, got)
}

func TestCustomerMobile(t *testing.T) {
	doc := &Document{ContactPersons: []ContactPerson{{Phone: "0788000000"}}}
	assert.Equal(t, "0788000000", doc.CustomerMobile())

	doc = &Document{ContactPersons: []ContactPerson{{Mobile: "0722", Phone: "0733"}}}
	assert.Equal(t, "0722", doc.CustomerMobile())

	assert.Equal(t, "", (&Document{}).CustomerMobile())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Widget", LineItem{Name: "Widget", Description: "x"}.DisplayName())
	assert.Equal(t, "Desc", LineItem{Description: " Desc "}.DisplayName())
}
