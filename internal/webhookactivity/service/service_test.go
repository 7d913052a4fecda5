package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/kabisa/ebmbridge/internal/webhookactivity/domain"
	"github.com/kabisa/ebmbridge/internal/webhookactivity/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Activity{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestActivityLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	activity, err := svc.Start(ctx, domain.StartRequest{
		DocumentType:   "invoice",
		DocumentNumber: "INV-000042",
		BusinessTIN:    "944000008",
		CustomerTIN:    "998000003",
		WebhookPayload: []byte(`{"invoice_number":"INV-000042"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, activity.Status)

	err = svc.MarkSuccess(ctx, activity.ID, domain.MarkSuccessRequest{
		InvoiceNumber: 42,
		ReceiptNumber: "123",
		ReceiptSign:   "QRSTUVWXYZ123456",
		VSDCResponse:  map[string]string{"resultCd": "000"},
		ProcessingMs:  850,
	})
	require.NoError(t, err)

	err = svc.MarkPDF(ctx, activity.ID, "invoice_42.pdf", true)
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, activity.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, got.Status)
	assert.Equal(t, int64(42), got.InvoiceNumber)
	assert.Equal(t, "123", got.ReceiptNumber)
	assert.True(t, got.PDFGenerated)
	assert.Equal(t, "invoice_42.pdf", got.PDFFilename)
	assert.JSONEq(t, `{"resultCd":"000"}`, string(got.VSDCResponse))
}

func TestMarkFailureKeepsErrorDetail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	activity, err := svc.Start(ctx, domain.StartRequest{
		DocumentType:   "credit_note",
		DocumentNumber: "CN-00007",
		BusinessTIN:    "944000008",
	})
	require.NoError(t, err)

	err = svc.MarkFailure(ctx, activity.ID, domain.MarkFailureRequest{
		InvoiceNumber: 97,
		Status:        domain.StatusTimeout,
		ErrorType:     "vsdc_timeout",
		ErrorMessage:  "context deadline exceeded",
		ProcessingMs:  30000,
	})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, activity.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTimeout, got.Status)
	assert.Equal(t, "vsdc_timeout", got.ErrorType)
}

func TestListAndStats(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for i, number := range []string{"INV-001", "INV-002", "CN-001"} {
		docType := "invoice"
		if i == 2 {
			docType = "credit_note"
		}
		activity, err := svc.Start(ctx, domain.StartRequest{
			DocumentType:   docType,
			DocumentNumber: number,
			BusinessTIN:    "944000008",
		})
		require.NoError(t, err)
		if i == 0 {
			require.NoError(t, svc.MarkSuccess(ctx, activity.ID, domain.MarkSuccessRequest{}))
		}
	}

	invoices, _, err := svc.List(ctx, domain.ListRequest{DocumentType: "invoice"})
	require.NoError(t, err)
	assert.Len(t, invoices, 2)

	failedOnly, _, err := svc.List(ctx, domain.ListRequest{Status: "failed"})
	require.NoError(t, err)
	assert.Empty(t, failedOnly)

	firstPage, pageInfo, err := svc.List(ctx, domain.ListRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, firstPage, 2)
	require.NotNil(t, pageInfo)
	assert.True(t, pageInfo.HasMore)

	secondPage, _, err := svc.List(ctx, domain.ListRequest{Limit: 2, PageToken: pageInfo.NextPageToken})
	require.NoError(t, err)
	assert.Len(t, secondPage, 1)

	_, _, err = svc.List(ctx, domain.ListRequest{PageToken: "%%%"})
	assert.ErrorIs(t, err, domain.ErrInvalidPageToken)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Success)
	assert.Equal(t, int64(2), stats.Pending)
	assert.Equal(t, 1.0, stats.SuccessRate)
	assert.Equal(t, int64(2), stats.ByType["invoice"])
	assert.Equal(t, int64(1), stats.ByType["credit_note"])
}

func TestStartRequiresDocument(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Start(context.Background(), domain.StartRequest{DocumentType: "invoice"})
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
}
