package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Status tracks a webhook delivery through the submission pipeline.
type Status string

const (
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
	StatusTimeout Status = "timeout"
)

// Activity is the audit record of one processed webhook delivery.
type Activity struct {
	ID snowflake.ID `gorm:"primaryKey" json:"id"`

	DocumentType   string `gorm:"not null;index" json:"document_type"`
	DocumentNumber string `gorm:"not null;index" json:"document_number"`
	InvoiceNumber  int64  `json:"invoice_number"`
	BusinessTIN    string `gorm:"index" json:"business_tin"`
	CustomerTIN    string `json:"customer_tin"`

	Status Status `gorm:"not null;index" json:"status"`

	// Snapshots kept for replay and dispute handling.
	WebhookPayload datatypes.JSON `json:"webhook_payload,omitempty"`
	VSDCRequest    datatypes.JSON `json:"vsdc_request,omitempty"`
	VSDCResponse   datatypes.JSON `json:"vsdc_response,omitempty"`

	ReceiptNumber string `json:"receipt_number,omitempty"`
	ReceiptSign   string `json:"receipt_signature,omitempty"`

	ErrorType    string `json:"error_type,omitempty"`
	ErrorCode    string `json:"error_code,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`

	PDFGenerated bool   `json:"pdf_generated"`
	PDFFilename  string `json:"pdf_filename,omitempty"`

	ProcessingMs int64 `json:"processing_ms"`
	RetryCount   int   `gorm:"not null;default:0" json:"retry_count"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Activity) TableName() string {
	return "webhook_activities"
}
