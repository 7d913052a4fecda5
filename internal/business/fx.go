package business

import (
	"github.com/kabisa/ebmbridge/internal/business/repository"
	"github.com/kabisa/ebmbridge/internal/business/service"
	"go.uber.org/fx"
)

var Module = fx.Module("business.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
