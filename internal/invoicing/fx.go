package invoicing

import (
	"github.com/kabisa/ebmbridge/internal/cache"
	"github.com/kabisa/ebmbridge/internal/config"
	"github.com/kabisa/ebmbridge/internal/invoicing/service"
	"github.com/kabisa/ebmbridge/internal/transform"
	"go.uber.org/fx"
)

var Module = fx.Module("invoicing",
	fx.Provide(
		transform.New,
		NewDedup,
		service.New,
	),
)

func NewDedup(cfg config.Config) *cache.WebhookDedup {
	return cache.NewWebhookDedup(cfg.WebhookDedupTTL)
}
