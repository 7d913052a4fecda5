package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	vsdcdomain "github.com/kabisa/ebmbridge/internal/vsdc/domain"
)

// ProcessResult is returned to the webhook sender after a document was
// accepted by the VSDC. PDFError is set when the receipt was fiscalized
// but rendering failed; the submission itself still succeeded.
type ProcessResult struct {
	ActivityID snowflake.ID `json:"activity_id"`

	DocumentNumber string `json:"document_number"`
	InvoiceNumber  int64  `json:"invoice_number"`

	ReceiptNumber    string `json:"receipt_number"`
	ReceiptSignature string `json:"receipt_signature"`
	InternalData     string `json:"internal_data"`
	SDCID            string `json:"sdc_id"`
	MRC              string `json:"mrc"`
	ReceiptDate      string `json:"receipt_date"`

	QRPayload string `json:"qr_payload,omitempty"`
	QRImage   string `json:"qr_image_url,omitempty"`

	PDFFilename string `json:"pdf_filename,omitempty"`
	PDFError    string `json:"pdf_error,omitempty"`

	Response *vsdcdomain.Response `json:"-"`
}

// Service runs the webhook-to-VSDC pipeline.
type Service interface {
	ProcessInvoice(ctx context.Context, payload []byte) (*ProcessResult, error)
	ProcessCreditNote(ctx context.Context, payload []byte) (*ProcessResult, error)
}

var (
	// ErrDuplicateDelivery marks a webhook redelivery of a document that
	// was already fiscalized within the dedup window.
	ErrDuplicateDelivery = errors.New("duplicate_delivery")
)
