package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kabisa/ebmbridge/pkg/db/pagination"
)

type StartRequest struct {
	DocumentType   string
	DocumentNumber string
	BusinessTIN    string
	CustomerTIN    string
	WebhookPayload []byte
}

type MarkSuccessRequest struct {
	InvoiceNumber int64
	ReceiptNumber string
	ReceiptSign   string
	VSDCRequest   any
	VSDCResponse  any
	ProcessingMs  int64
}

type MarkFailureRequest struct {
	InvoiceNumber int64
	Status        Status
	ErrorType     string
	ErrorCode     string
	ErrorMessage  string
	VSDCRequest   any
	VSDCResponse  any
	ProcessingMs  int64
}

type ListRequest struct {
	DocumentType string
	BusinessTIN  string
	Status       string
	From         *time.Time
	To           *time.Time
	Limit        int
	PageToken    string
}

type ListFilter struct {
	DocumentType string
	BusinessTIN  string
	Status       Status
	From         *time.Time
	To           *time.Time
	Limit        int
	Cursor       *pagination.Cursor
}

type Stats struct {
	Total   int64 `json:"total"`
	Pending int64 `json:"pending"`
	Success int64 `json:"success"`
	Failed  int64 `json:"failed"`
	Timeout int64 `json:"timeout"`

	// SuccessRate is success over completed deliveries (pending excluded).
	SuccessRate     float64          `json:"success_rate"`
	AvgProcessingMs float64          `json:"avg_processing_ms"`
	ByType          map[string]int64 `json:"by_type"`
}

type Service interface {
	Start(ctx context.Context, req StartRequest) (*Activity, error)
	MarkSuccess(ctx context.Context, id snowflake.ID, req MarkSuccessRequest) error
	MarkPDF(ctx context.Context, id snowflake.ID, filename string, generated bool) error
	MarkFailure(ctx context.Context, id snowflake.ID, req MarkFailureRequest) error
	GetByID(ctx context.Context, id snowflake.ID) (*Activity, error)
	List(ctx context.Context, req ListRequest) ([]Activity, *pagination.PageInfo, error)
	Stats(ctx context.Context) (Stats, error)
}

var (
	ErrInvalidDocument  = errors.New("invalid_document")
	ErrInvalidPageToken = errors.New("invalid_page_token")
	ErrNotFound         = errors.New("not_found")
)
