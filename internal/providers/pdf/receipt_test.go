package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testReceiptData() ReceiptData {
	return ReceiptData{
		CompanyName:    "Kabisa Electric",
		CompanyAddress: "Kigali, Rwanda",
		CompanyPhone:   "+250788000000",
		CompanyTIN:     "944000008",
		CustomerName:   "Acme Ltd",
		CustomerTIN:    "998000003",
		DocumentNumber: "INV-000042",
		InvoiceNumber:  42,
		Items: []ReceiptItem{
			{Code: "RW1NTXU00000001", Description: "Charging session", Qty: 2, UnitPrice: 1000, TaxCategory: "B", Total: 2000},
			{Code: "RW1NTXU00000002", Description: "Service fee", Qty: 1.5, UnitPrice: 500, TaxCategory: "A", Total: 750},
		},
		TotalTaxableA:    750,
		TotalTaxableB:    2000,
		TotalTaxB:        305.08,
		TotalTax:         305.08,
		Total:            2750,
		SDCID:            "SDC010053151",
		ReceiptNumber:    "123",
		MRC:              "WIS00058003",
		InternalData:     "ABCD-EFGH-IJKL-MNOP",
		ReceiptSignature: "QRST-UVWX-YZ12-3456",
		Date:             "01/03/2024",
		Time:             "12:00:00",
		QRPayload:        "https://myrra.rra.gov.rw/common/link/ebm/receipt/indexEbmReceiptData?Data=94400000800QRSTUVWXYZ123456",
	}
}

func TestRenderReceiptProducesPDF(t *testing.T) {
	provider := New(zap.NewNop())

	doc, err := provider.RenderReceipt(context.Background(), testReceiptData())
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestRenderRefundReceipt(t *testing.T) {
	provider := New(zap.NewNop())

	data := testReceiptData()
	data.Refund = true
	data.InvoiceNumber = 942
	data.QRPayload = ""

	doc, err := provider.RenderReceipt(context.Background(), data)
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
}
