// Package vsdc holds the HTTP client for the Rwanda VSDC (EBM) endpoint.
package vsdc

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kabisa/ebmbridge/internal/vsdc/domain"
	"go.uber.org/zap"
)

// Config configures the VSDC client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client submits sales transactions to the VSDC API.
type Client struct {
	http *resty.Client
	log  *zap.Logger
}

// New builds a Client. The VSDC sandbox is slow; the default timeout is 30s
// to match it.
func New(cfg Config, log *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http: httpClient,
		log:  log.Named("vsdc.client"),
	}
}

// SubmitSales posts a sales transaction and decodes the result envelope.
// A non-000 resultCd is returned as *domain.APIError; transport problems
// map to ErrTimeout / ErrUnavailable. No retries here: redelivery is the
// webhook sender's job.
func (c *Client) SubmitSales(ctx context.Context, req *domain.SalesRequest) (*domain.Response, error) {
	var out domain.Response

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			c.log.Error("vsdc request timed out", zap.Int64("invc_no", req.InvcNo), zap.Error(err))
			return nil, fmt.Errorf("%w: %v", domain.ErrTimeout, err)
		}
		c.log.Error("vsdc request failed", zap.Int64("invc_no", req.InvcNo), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}

	if resp.StatusCode() != http.StatusOK {
		c.log.Error("vsdc returned http error",
			zap.Int64("invc_no", req.InvcNo),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, fmt.Errorf("%w: http status %d", domain.ErrUnavailable, resp.StatusCode())
	}

	if out.ResultCd == "" {
		return nil, fmt.Errorf("%w: malformed response body", domain.ErrUnavailable)
	}

	if !out.OK() {
		c.log.Warn("vsdc rejected submission",
			zap.Int64("invc_no", req.InvcNo),
			zap.String("result_cd", out.ResultCd),
			zap.String("result_msg", out.ResultMsg),
		)
		return &out, &domain.APIError{
			Code:     out.ResultCd,
			Message:  out.ResultMsg,
			Response: &out,
		}
	}

	c.log.Info("vsdc accepted submission",
		zap.Int64("invc_no", req.InvcNo),
		zap.String("rcpt_no", out.ReceiptNumber()),
	)
	return &out, nil
}
