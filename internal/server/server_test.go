package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	authdomain "github.com/kabisa/ebmbridge/internal/auth/domain"
	"github.com/kabisa/ebmbridge/internal/config"
	invoicingdomain "github.com/kabisa/ebmbridge/internal/invoicing/domain"
	"github.com/kabisa/ebmbridge/internal/transform"
	vsdcdomain "github.com/kabisa/ebmbridge/internal/vsdc/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoicing struct {
	invoiceFn func(payload []byte) (*invoicingdomain.ProcessResult, error)
}

func (f *fakeInvoicing) ProcessInvoice(ctx context.Context, payload []byte) (*invoicingdomain.ProcessResult, error) {
	return f.invoiceFn(payload)
}

func (f *fakeInvoicing) ProcessCreditNote(ctx context.Context, payload []byte) (*invoicingdomain.ProcessResult, error) {
	return f.invoiceFn(payload)
}

type fakeAuth struct{}

func (fakeAuth) CreateUser(ctx context.Context, req authdomain.CreateUserRequest) (*authdomain.User, error) {
	return nil, authdomain.ErrInvalidCredentials
}

func (fakeAuth) Login(ctx context.Context, req authdomain.LoginRequest) (*authdomain.LoginResult, error) {
	return nil, authdomain.ErrInvalidCredentials
}

func (fakeAuth) Verify(token string) (*authdomain.Claims, error) {
	if token == "valid-token" {
		return &authdomain.Claims{Email: "ops@example.com"}, nil
	}
	return nil, authdomain.ErrInvalidToken
}

func (fakeAuth) ChangePassword(ctx context.Context, userID string, newPassword string) error {
	return nil
}

func newTestServer(t *testing.T, inv *fakeInvoicing) (*Server, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	pdfDir := t.TempDir()
	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	srv := &Server{
		engine:       engine,
		cfg:          config.Config{PDF: config.PDFConfig{OutputDir: pdfDir}},
		authsvc:      fakeAuth{},
		invoicingSvc: inv,
	}
	srv.registerAuthRoutes()
	srv.registerWebhookRoutes()
	srv.registerAPIRoutes()

	return srv, pdfDir
}

func do(srv *Server, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func TestInvoiceWebhookOK(t *testing.T) {
	srv, _ := newTestServer(t, &fakeInvoicing{
		invoiceFn: func(payload []byte) (*invoicingdomain.ProcessResult, error) {
			return &invoicingdomain.ProcessResult{InvoiceNumber: 42, ReceiptNumber: "123"}, nil
		},
	})

	rec := do(srv, http.MethodPost, "/api/v1/webhooks/zoho/invoice", `{"invoice_number":"INV-42"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"receipt_number":"123"`)
}

func TestInvoiceWebhookValidationError(t *testing.T) {
	srv, _ := newTestServer(t, &fakeInvoicing{
		invoiceFn: func(payload []byte) (*invoicingdomain.ProcessResult, error) {
			verr := &transform.ValidationErrors{}
			verr.Errors = append(verr.Errors, transform.ValidationError{
				Field:   "cf_customer_tin",
				Message: "customer TIN is required",
			})
			return nil, verr
		},
	})

	rec := do(srv, http.MethodPost, "/api/v1/webhooks/zoho/invoice", `{}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cf_customer_tin")
	assert.Contains(t, rec.Body.String(), "validation_error")
}

func TestInvoiceWebhookVSDCRejection(t *testing.T) {
	srv, _ := newTestServer(t, &fakeInvoicing{
		invoiceFn: func(payload []byte) (*invoicingdomain.ProcessResult, error) {
			return nil, &vsdcdomain.APIError{Code: "994", Message: "duplicate"}
		},
	})

	rec := do(srv, http.MethodPost, "/api/v1/webhooks/zoho/invoice", `{}`, nil)

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"994"`)
}

func TestInvoiceWebhookTimeout(t *testing.T) {
	srv, _ := newTestServer(t, &fakeInvoicing{
		invoiceFn: func(payload []byte) (*invoicingdomain.ProcessResult, error) {
			return nil, vsdcdomain.ErrTimeout
		},
	})

	rec := do(srv, http.MethodPost, "/api/v1/webhooks/zoho/invoice", `{}`, nil)
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestInvoiceWebhookDuplicateDelivery(t *testing.T) {
	srv, _ := newTestServer(t, &fakeInvoicing{
		invoiceFn: func(payload []byte) (*invoicingdomain.ProcessResult, error) {
			return nil, invoicingdomain.ErrDuplicateDelivery
		},
	})

	rec := do(srv, http.MethodPost, "/api/v1/webhooks/zoho/invoice", `{}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDownloadReceipt(t *testing.T) {
	srv, pdfDir := newTestServer(t, &fakeInvoicing{})
	require.NoError(t, os.WriteFile(filepath.Join(pdfDir, "invoice_42.pdf"), []byte("%PDF-1.7"), 0o644))

	rec := do(srv, http.MethodGet, "/api/v1/receipts/invoice_42.pdf", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "%PDF")

	rec = do(srv, http.MethodGet, "/api/v1/receipts/..%2Fsecrets.pdf", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(srv, http.MethodGet, "/api/v1/receipts/missing.pdf", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	srv, _ := newTestServer(t, &fakeInvoicing{})

	rec := do(srv, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(srv, http.MethodGet, "/auth/me", "", map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(srv, http.MethodGet, "/auth/me", "", map[string]string{"Authorization": "Bearer valid-token"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ops@example.com")
}
