package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Transaction is one accepted VSDC submission, recorded for daily report
// aggregation.
type Transaction struct {
	ID snowflake.ID `gorm:"primaryKey" json:"id"`

	BusinessTIN   string `gorm:"not null;index:idx_transactions_tin_date" json:"business_tin"`
	DocumentType  string `gorm:"not null" json:"document_type"`
	InvoiceNumber int64  `gorm:"not null" json:"invoice_number"`
	ReceiptNumber string `json:"receipt_number"`

	TotalAmount float64 `gorm:"not null" json:"total_amount"`
	TaxAmount   float64 `gorm:"not null" json:"tax_amount"`

	// BusinessDate is the VSDC sales date in yyyymmdd form.
	BusinessDate string `gorm:"not null;index:idx_transactions_tin_date" json:"business_date"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

// ReportType distinguishes the mid-day X report from the closing Z report.
type ReportType string

const (
	ReportTypeX ReportType = "X"
	ReportTypeZ ReportType = "Z"
)

// Summary aggregates a business day.
type Summary struct {
	BusinessTIN  string  `json:"business_tin"`
	BusinessDate string  `json:"business_date"`
	SaleCount    int64   `json:"sale_count"`
	RefundCount  int64   `json:"refund_count"`
	GrossSales   float64 `json:"gross_sales"`
	GrossRefunds float64 `json:"gross_refunds"`
	TaxCollected float64 `json:"tax_collected"`
	NetAmount    float64 `json:"net_amount"`
}

// DailyReport is a persisted Z report. Once written it is immutable; a day
// can only be closed once per business.
type DailyReport struct {
	ID snowflake.ID `gorm:"primaryKey" json:"id"`

	Type         ReportType `gorm:"not null" json:"type"`
	BusinessTIN  string     `gorm:"not null;uniqueIndex:ux_daily_reports_tin_date" json:"business_tin"`
	BusinessDate string     `gorm:"not null;uniqueIndex:ux_daily_reports_tin_date" json:"business_date"`

	SaleCount    int64   `json:"sale_count"`
	RefundCount  int64   `json:"refund_count"`
	GrossSales   float64 `json:"gross_sales"`
	GrossRefunds float64 `json:"gross_refunds"`
	TaxCollected float64 `json:"tax_collected"`
	NetAmount    float64 `json:"net_amount"`

	GeneratedAt time.Time `gorm:"not null" json:"generated_at"`
}

func (DailyReport) TableName() string {
	return "daily_reports"
}
