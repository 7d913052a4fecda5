package vsdc

import (
	"github.com/kabisa/ebmbridge/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("vsdc.client",
	fx.Provide(NewFromConfig),
)

func NewFromConfig(cfg config.Config, log *zap.Logger) *Client {
	return New(Config{
		BaseURL: cfg.VSDC.APIURL,
		Timeout: cfg.VSDC.Timeout,
	}, log)
}
