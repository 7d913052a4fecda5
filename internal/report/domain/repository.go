package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	InsertTransaction(ctx context.Context, db *gorm.DB, txn *Transaction) error
	ListTransactions(ctx context.Context, db *gorm.DB, tin, businessDate string) ([]*Transaction, error)
	SummarizeDay(ctx context.Context, db *gorm.DB, tin, businessDate string) (Summary, error)
	InsertReport(ctx context.Context, db *gorm.DB, report *DailyReport) error
	FindReport(ctx context.Context, db *gorm.DB, tin, businessDate string) (*DailyReport, error)
	ListReports(ctx context.Context, db *gorm.DB, tin string, limit int) ([]*DailyReport, error)
}
