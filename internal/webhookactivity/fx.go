package webhookactivity

import (
	"github.com/kabisa/ebmbridge/internal/webhookactivity/repository"
	"github.com/kabisa/ebmbridge/internal/webhookactivity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("webhookactivity.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
