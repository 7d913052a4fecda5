// Package pdf renders EBM receipts.
package pdf

import (
	"context"
	"fmt"
)

// ReceiptItem is one printed line.
type ReceiptItem struct {
	Code        string
	Description string
	Qty         float64
	UnitPrice   float64
	TaxCategory string
	Total       float64
}

// ReceiptData is everything printed on a receipt: the seller block, the
// document lines, the tax category totals, and the SDC signature block
// returned by the VSDC.
type ReceiptData struct {
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
	CompanyTIN     string

	CustomerName string
	CustomerTIN  string

	DocumentNumber string
	InvoiceNumber  int64
	Refund         bool

	Items []ReceiptItem

	TotalTaxableA float64
	TotalTaxableB float64
	TotalTaxA     float64
	TotalTaxB     float64
	TotalTax      float64
	Total         float64

	SDCID            string
	ReceiptNumber    string
	MRC              string
	InternalData     string
	ReceiptSignature string
	Date             string // dd/mm/yyyy
	Time             string // hh:mm:ss

	// QRPayload is the verification link or signature blob encoded in the
	// receipt QR code.
	QRPayload string
}

// Provider renders receipts to PDF bytes.
type Provider interface {
	RenderReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
