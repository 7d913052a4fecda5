package repository

import (
	"context"
	"errors"

	"github.com/kabisa/ebmbridge/internal/report/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) InsertTransaction(ctx context.Context, db *gorm.DB, txn *domain.Transaction) error {
	return db.WithContext(ctx).Create(txn).Error
}

func (r *repo) ListTransactions(ctx context.Context, db *gorm.DB, tin, businessDate string) ([]*domain.Transaction, error) {
	var txns []*domain.Transaction
	err := db.WithContext(ctx).
		Where("business_tin = ? AND business_date = ?", tin, businessDate).
		Order("created_at asc").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *repo) SummarizeDay(ctx context.Context, db *gorm.DB, tin, businessDate string) (domain.Summary, error) {
	type row struct {
		DocumentType string
		Count        int64
		Total        float64
		Tax          float64
	}
	var rows []row
	err := db.WithContext(ctx).
		Model(&domain.Transaction{}).
		Select("document_type, count(*) as count, coalesce(sum(total_amount), 0) as total, coalesce(sum(tax_amount), 0) as tax").
		Where("business_tin = ? AND business_date = ?", tin, businessDate).
		Group("document_type").
		Find(&rows).Error
	if err != nil {
		return domain.Summary{}, err
	}

	summary := domain.Summary{BusinessTIN: tin, BusinessDate: businessDate}
	for _, r := range rows {
		if r.DocumentType == "credit_note" {
			summary.RefundCount = r.Count
			summary.GrossRefunds = r.Total
			summary.TaxCollected -= r.Tax
			continue
		}
		summary.SaleCount = r.Count
		summary.GrossSales = r.Total
		summary.TaxCollected += r.Tax
	}
	summary.NetAmount = summary.GrossSales - summary.GrossRefunds
	return summary, nil
}

func (r *repo) InsertReport(ctx context.Context, db *gorm.DB, report *domain.DailyReport) error {
	return db.WithContext(ctx).Create(report).Error
}

func (r *repo) FindReport(ctx context.Context, db *gorm.DB, tin, businessDate string) (*domain.DailyReport, error) {
	var report domain.DailyReport
	err := db.WithContext(ctx).
		First(&report, "business_tin = ? AND business_date = ?", tin, businessDate).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &report, nil
}

func (r *repo) ListReports(ctx context.Context, db *gorm.DB, tin string, limit int) ([]*domain.DailyReport, error) {
	stmt := db.WithContext(ctx).Model(&domain.DailyReport{})
	if tin != "" {
		stmt = stmt.Where("business_tin = ?", tin)
	}
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}

	var reports []*domain.DailyReport
	err := stmt.Order("business_date desc").Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}
