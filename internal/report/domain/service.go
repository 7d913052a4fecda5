package domain

import (
	"context"
	"errors"
)

type RecordSaleRequest struct {
	BusinessTIN   string
	DocumentType  string
	InvoiceNumber int64
	ReceiptNumber string
	TotalAmount   float64
	TaxAmount     float64
	// BusinessDate in yyyymmdd form, as submitted to the VSDC.
	BusinessDate string
}

type Service interface {
	RecordSale(ctx context.Context, req RecordSaleRequest) error
	Transactions(ctx context.Context, tin, businessDate string) ([]Transaction, error)
	// XReport summarizes the day so far without closing it.
	XReport(ctx context.Context, tin, businessDate string) (Summary, error)
	// ZReport closes the day. A closed day cannot be closed again.
	ZReport(ctx context.Context, tin, businessDate string) (DailyReport, error)
	ListZReports(ctx context.Context, tin string, limit int) ([]DailyReport, error)
}

var (
	ErrInvalidTIN  = errors.New("invalid_tin")
	ErrInvalidDate = errors.New("invalid_date")
	ErrDayClosed   = errors.New("day_already_closed")
)
