package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/kabisa/ebmbridge/internal/report/domain"
	"github.com/kabisa/ebmbridge/internal/report/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Transaction{}, &domain.DailyReport{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func seedDay(t *testing.T, svc domain.Service) {
	t.Helper()
	ctx := context.Background()

	sales := []domain.RecordSaleRequest{
		{BusinessTIN: "944000008", DocumentType: "invoice", InvoiceNumber: 1, ReceiptNumber: "101", TotalAmount: 1180, TaxAmount: 180, BusinessDate: "20240301"},
		{BusinessTIN: "944000008", DocumentType: "invoice", InvoiceNumber: 2, ReceiptNumber: "102", TotalAmount: 590, TaxAmount: 90, BusinessDate: "20240301"},
		{BusinessTIN: "944000008", DocumentType: "credit_note", InvoiceNumber: 91, ReceiptNumber: "103", TotalAmount: 590, TaxAmount: 90, BusinessDate: "20240301"},
	}
	for _, sale := range sales {
		require.NoError(t, svc.RecordSale(ctx, sale))
	}
}

func TestXReportAggregatesDay(t *testing.T) {
	svc := newTestService(t)
	seedDay(t, svc)

	summary, err := svc.XReport(context.Background(), "944000008", "20240301")
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.SaleCount)
	assert.Equal(t, int64(1), summary.RefundCount)
	assert.Equal(t, 1770.0, summary.GrossSales)
	assert.Equal(t, 590.0, summary.GrossRefunds)
	assert.Equal(t, 180.0, summary.TaxCollected)
	assert.Equal(t, 1180.0, summary.NetAmount)
}

func TestZReportClosesDayOnce(t *testing.T) {
	svc := newTestService(t)
	seedDay(t, svc)
	ctx := context.Background()

	report, err := svc.ZReport(ctx, "944000008", "20240301")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportTypeZ, report.Type)
	assert.Equal(t, int64(2), report.SaleCount)
	assert.Equal(t, 1180.0, report.NetAmount)

	_, err = svc.ZReport(ctx, "944000008", "20240301")
	assert.ErrorIs(t, err, domain.ErrDayClosed)

	reports, err := svc.ListZReports(ctx, "944000008", 10)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, report.ID, reports[0].ID)
}

func TestZReportOnEmptyDay(t *testing.T) {
	svc := newTestService(t)

	report, err := svc.ZReport(context.Background(), "944000008", "20240302")
	require.NoError(t, err)
	assert.Zero(t, report.SaleCount)
	assert.Zero(t, report.NetAmount)
}

func TestReportValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.XReport(ctx, "", "20240301")
	assert.ErrorIs(t, err, domain.ErrInvalidTIN)

	_, err = svc.XReport(ctx, "944000008", "2024-03-01")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestTransactionsListing(t *testing.T) {
	svc := newTestService(t)
	seedDay(t, svc)

	txns, err := svc.Transactions(context.Background(), "944000008", "20240301")
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "101", txns[0].ReceiptNumber)
}
