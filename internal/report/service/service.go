package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kabisa/ebmbridge/internal/report/domain"
	vsdcdomain "github.com/kabisa/ebmbridge/internal/vsdc/domain"
	"github.com/kabisa/ebmbridge/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	now   func() time.Time
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("report.service"),
		genID: p.GenID,
		repo:  p.Repo,
		now:   time.Now,
	}
}

func (s *Service) RecordSale(ctx context.Context, req domain.RecordSaleRequest) error {
	tin := strings.TrimSpace(req.BusinessTIN)
	if tin == "" {
		return domain.ErrInvalidTIN
	}

	businessDate := strings.TrimSpace(req.BusinessDate)
	if businessDate == "" {
		businessDate = s.now().UTC().Format(vsdcdomain.DateLayout)
	}

	txn := domain.Transaction{
		ID:            s.genID.Generate(),
		BusinessTIN:   tin,
		DocumentType:  req.DocumentType,
		InvoiceNumber: req.InvoiceNumber,
		ReceiptNumber: req.ReceiptNumber,
		TotalAmount:   req.TotalAmount,
		TaxAmount:     req.TaxAmount,
		BusinessDate:  businessDate,
		CreatedAt:     s.now().UTC(),
	}

	return s.repo.InsertTransaction(ctx, s.db, &txn)
}

func (s *Service) Transactions(ctx context.Context, tin, businessDate string) ([]domain.Transaction, error) {
	tin, businessDate, err := s.normalize(tin, businessDate)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListTransactions(ctx, s.db, tin, businessDate)
	if err != nil {
		return nil, err
	}

	txns := make([]domain.Transaction, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		txns = append(txns, *item)
	}
	return txns, nil
}

func (s *Service) XReport(ctx context.Context, tin, businessDate string) (domain.Summary, error) {
	tin, businessDate, err := s.normalize(tin, businessDate)
	if err != nil {
		return domain.Summary{}, err
	}
	return s.repo.SummarizeDay(ctx, s.db, tin, businessDate)
}

func (s *Service) ZReport(ctx context.Context, tin, businessDate string) (domain.DailyReport, error) {
	tin, businessDate, err := s.normalize(tin, businessDate)
	if err != nil {
		return domain.DailyReport{}, err
	}

	existing, err := s.repo.FindReport(ctx, s.db, tin, businessDate)
	if err != nil {
		return domain.DailyReport{}, err
	}
	if existing != nil {
		return domain.DailyReport{}, domain.ErrDayClosed
	}

	summary, err := s.repo.SummarizeDay(ctx, s.db, tin, businessDate)
	if err != nil {
		return domain.DailyReport{}, err
	}

	report := domain.DailyReport{
		ID:           s.genID.Generate(),
		Type:         domain.ReportTypeZ,
		BusinessTIN:  tin,
		BusinessDate: businessDate,
		SaleCount:    summary.SaleCount,
		RefundCount:  summary.RefundCount,
		GrossSales:   summary.GrossSales,
		GrossRefunds: summary.GrossRefunds,
		TaxCollected: summary.TaxCollected,
		NetAmount:    summary.NetAmount,
		GeneratedAt:  s.now().UTC(),
	}

	if err := s.repo.InsertReport(ctx, s.db, &report); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.DailyReport{}, domain.ErrDayClosed
		}
		return domain.DailyReport{}, err
	}

	s.log.Info("business day closed",
		zap.String("tin", tin),
		zap.String("business_date", businessDate),
		zap.Int64("sales", report.SaleCount),
		zap.Int64("refunds", report.RefundCount),
	)
	return report, nil
}

func (s *Service) ListZReports(ctx context.Context, tin string, limit int) ([]domain.DailyReport, error) {
	if limit <= 0 || limit > 250 {
		limit = 31
	}

	items, err := s.repo.ListReports(ctx, s.db, strings.TrimSpace(tin), limit)
	if err != nil {
		return nil, err
	}

	reports := make([]domain.DailyReport, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		reports = append(reports, *item)
	}
	return reports, nil
}

func (s *Service) normalize(tin, businessDate string) (string, string, error) {
	tin = strings.TrimSpace(tin)
	if tin == "" {
		return "", "", domain.ErrInvalidTIN
	}

	businessDate = strings.TrimSpace(businessDate)
	if businessDate == "" {
		return tin, s.now().UTC().Format(vsdcdomain.DateLayout), nil
	}
	if _, err := time.Parse(vsdcdomain.DateLayout, businessDate); err != nil {
		return "", "", domain.ErrInvalidDate
	}
	return tin, businessDate, nil
}
