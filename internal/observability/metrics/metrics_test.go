package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsEndpointExposesInstruments(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	m.RecordSubmission("invoice", "000", 120*time.Millisecond)
	m.RecordSubmission("credit_note", "", time.Second)
	m.RecordPDFRender(true)
	m.RecordPDFRender(false)

	r := gin.New()
	r.GET("/metrics", m.Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `ebmbridge_vsdc_submissions_total{result="000",type="invoice"} 1`)
	assert.Contains(t, body, `ebmbridge_vsdc_submissions_total{result="transport_error",type="credit_note"} 1`)
	assert.Contains(t, body, `ebmbridge_pdf_renders_total{status="failed"} 1`)
}

func TestGinMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.GinMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/metrics", m.Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `ebmbridge_http_requests_total{method="GET",route="/ping",status="204"} 1`)
}
