package transform

import (
	"testing"
	"time"

	"github.com/kabisa/ebmbridge/internal/vsdc/domain"
	"github.com/kabisa/ebmbridge/internal/zoho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testClock = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestTransformer() *Transformer {
	tr := New(zap.NewNop())
	tr.now = func() time.Time { return testClock }
	return tr
}

func testProfile() Profile {
	return Profile{
		TIN:                  "944000008",
		BhfID:                "00",
		TradeName:            "Kabisa Electric",
		Address:              "Kigali, Rwanda",
		TopMessage:           "Welcome",
		BottomMessage:        "Thank you",
		RegistrarID:          "11999",
		RegistrarName:        "EBM Bridge",
		ModifierID:           "45678",
		ModifierName:         "EBM Bridge",
		FallbackPurchaseCode: "708955",
	}
}

func rate18() *float64 {
	r := 18.0
	return &r
}

func testInvoice() *zoho.Document {
	return &zoho.Document{
		Type:          zoho.DocumentTypeInvoice,
		InvoiceNumber: "INV-2024-00042",
		CustomerName:  "Acme Ltd",
		Date:          "2024-02-28",
		CustomFieldHash: map[string]any{
			zoho.FieldBusinessTIN:  "944000008",
			zoho.FieldCustomerTIN:  "998000003",
			zoho.FieldPurchaseCode: "555444",
		},
		ContactPersons: []zoho.ContactPerson{{Mobile: "0788123456"}},
		LineItems: []zoho.LineItem{
			{Name: "Charging session", Rate: 1000, Quantity: 2, TaxRate: rate18()},
			{Name: "Service fee", Rate: 500, Quantity: 1, TaxCategory: "A"},
		},
	}
}

func TestInvoiceTransform(t *testing.T) {
	req, err := newTestTransformer().Invoice(testInvoice(), testProfile())
	require.NoError(t, err)

	assert.Equal(t, int64(42), req.InvcNo)
	assert.Equal(t, "944000008", req.Tin)
	assert.Equal(t, "998000003", req.CustTin)
	assert.Equal(t, "555444", req.PrcOrdCd)
	assert.Equal(t, domain.ReceiptTypeSale, req.RcptTyCd)
	assert.Equal(t, "20240228", req.SalesDt)
	assert.Equal(t, "20240301120000", req.CfmDt)

	// Tax-inclusive split: 2000 at 18% and 500 at 0%.
	assert.Equal(t, 2000.0, req.TaxblAmtB)
	assert.Equal(t, 305.08, req.TaxAmtB)
	assert.Equal(t, 500.0, req.TaxblAmtA)
	assert.Equal(t, 0.0, req.TaxAmtA)
	assert.Equal(t, 2500.0, req.TotAmt)
	assert.Equal(t, 305.08, req.TotTaxAmt)
	assert.Equal(t, 18.0, req.TaxRtB)

	require.Len(t, req.ItemList, 2)
	first := req.ItemList[0]
	assert.Equal(t, 1, first.ItemSeq)
	assert.Equal(t, "Charging session", first.ItemNm)
	assert.Equal(t, "B", first.TaxTyCd)
	assert.Equal(t, 2000.0, first.SplyAmt)
	assert.Equal(t, 305.08, first.TaxAmt)
	assert.Equal(t, "A", req.ItemList[1].TaxTyCd)

	require.NotNil(t, req.Receipt.CustMblNo)
	assert.Equal(t, "0788123456", *req.Receipt.CustMblNo)
	assert.Equal(t, "Kabisa Electric", req.Receipt.TrdeNm)
}

// The taxable amount on the wire is tax inclusive, so net plus tax must
// reconstruct the document total to the cent.
func TestInvoiceTransformTotalsConsistent(t *testing.T) {
	doc := testInvoice()
	doc.LineItems = []zoho.LineItem{
		{Name: "a", Rate: 333.33, Quantity: 3, TaxRate: rate18()},
		{Name: "b", Rate: 19.99, Quantity: 7, TaxRate: rate18()},
		{Name: "c", Rate: 120.50, Quantity: 1, TaxCategory: "A"},
	}

	req, err := newTestTransformer().Invoice(doc, testProfile())
	require.NoError(t, err)

	var itemTotal, itemTax float64
	for _, item := range req.ItemList {
		itemTotal += item.TotAmt
		itemTax += item.TaxAmt
	}
	assert.InDelta(t, req.TotAmt, itemTotal, 0.011)
	assert.InDelta(t, req.TotTaxAmt, itemTax, 0.011)

	net := req.TotTaxblAmt - req.TotTaxAmt
	assert.InDelta(t, req.TotAmt, net+req.TotTaxAmt, 0.001)
}

func TestCreditNoteTransform(t *testing.T) {
	doc := testInvoice()
	doc.Type = zoho.DocumentTypeCreditNote
	doc.InvoiceNumber = ""
	doc.CreditNoteNumber = "CN-00042"
	doc.InvoicesCredited = []zoho.CreditedInvoice{{InvoiceNumber: "INV-000007"}}

	req, err := newTestTransformer().CreditNote(doc, testProfile())
	require.NoError(t, err)

	assert.Equal(t, int64(942), req.InvcNo)
	assert.Equal(t, int64(7), req.OrgInvcNo)
	assert.Equal(t, domain.ReceiptTypeRefund, req.RcptTyCd)
	require.NotNil(t, req.RfdDt)
	assert.Equal(t, "20240301120000", *req.RfdDt)
}

func TestMissingCustomerTIN(t *testing.T) {
	doc := testInvoice()
	delete(doc.CustomFieldHash, zoho.FieldCustomerTIN)

	_, err := newTestTransformer().Invoice(doc, testProfile())
	require.Error(t, err)

	var verr *ValidationErrors
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Errors, 1)
	assert.Equal(t, zoho.FieldCustomerTIN, verr.Errors[0].Field)
	assert.Contains(t, err.Error(), zoho.FieldCustomerTIN)
}

func TestValidationCollectsAllProblems(t *testing.T) {
	doc := &zoho.Document{Type: zoho.DocumentTypeInvoice}

	_, err := newTestTransformer().Invoice(doc, Profile{})
	var verr *ValidationErrors
	require.ErrorAs(t, err, &verr)

	fields := make([]string, 0, len(verr.Errors))
	for _, e := range verr.Errors {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, zoho.FieldBusinessTIN)
	assert.Contains(t, fields, zoho.FieldCustomerTIN)
	assert.Contains(t, fields, zoho.FieldPurchaseCode)
	assert.Contains(t, fields, "invoice_number")
	assert.Contains(t, fields, "line_items")
}

func TestExtractNumber(t *testing.T) {
	cases := []struct {
		raw  string
		want int64
	}{
		{"INV-2024-00042", 42},
		{"INV-000005", 5},
		{"42", 42},
		{"CN-9", 9},
	}
	for _, tc := range cases {
		got, ok := extractNumber(tc.raw, testClock)
		assert.True(t, ok, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}

	// No digits at all: last eight digits of the timestamp.
	got, ok := extractNumber("DRAFT", testClock)
	assert.False(t, ok)
	assert.Equal(t, int64(1120000), got)
}

func TestRefundInvoiceNumber(t *testing.T) {
	assert.Equal(t, int64(942), refundInvoiceNumber(42))
	assert.Equal(t, int64(95), refundInvoiceNumber(5))
}

func TestFormatSalesDate(t *testing.T) {
	cases := map[string]string{
		"2024-02-28":          "20240228",
		"28/02/2024":          "20240228",
		"2024-02-28 10:30:00": "20240228",
		"not a date":          "20240301",
		"":                    "20240301",
	}
	for raw, want := range cases {
		assert.Equal(t, want, formatSalesDate(raw, testClock), raw)
	}
}
