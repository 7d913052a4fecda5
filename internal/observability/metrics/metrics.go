// Package metrics exposes Prometheus instruments for the bridge.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the bridge's Prometheus instruments.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	submissions        *prometheus.CounterVec
	submissionDuration *prometheus.HistogramVec
	pdfRenders         *prometheus.CounterVec
}

// New registers and returns the bridge's instruments on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ebmbridge_http_requests_total",
		Help: "Counts HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ebmbridge_http_duration_seconds",
		Help:    "HTTP request latency per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ebmbridge_vsdc_submissions_total",
		Help: "VSDC submission outcomes by document type and result code.",
	}, []string{"type", "result"})

	submissionDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ebmbridge_vsdc_submission_duration_seconds",
		Help:    "VSDC submission roundtrip latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"type"})

	pdfRenders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ebmbridge_pdf_renders_total",
		Help: "Receipt PDF render outcomes.",
	}, []string{"status"})

	registry.MustRegister(httpRequests, httpDuration, submissions, submissionDuration, pdfRenders)

	return &Metrics{
		registry:           registry,
		httpRequests:       httpRequests,
		httpDuration:       httpDuration,
		submissions:        submissions,
		submissionDuration: submissionDuration,
		pdfRenders:         pdfRenders,
	}
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// GinMiddleware records per-request counters and latency.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordSubmission counts one VSDC submission outcome.
func (m *Metrics) RecordSubmission(docType, resultCd string, elapsed time.Duration) {
	if m == nil {
		return
	}
	if resultCd == "" {
		resultCd = "transport_error"
	}
	m.submissions.WithLabelValues(docType, resultCd).Inc()
	m.submissionDuration.WithLabelValues(docType).Observe(elapsed.Seconds())
}

// RecordPDFRender counts one receipt render outcome.
func (m *Metrics) RecordPDFRender(ok bool) {
	if m == nil {
		return
	}
	status := "success"
	if !ok {
		status = "failed"
	}
	m.pdfRenders.WithLabelValues(status).Inc()
}
