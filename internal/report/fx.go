package report

import (
	"github.com/kabisa/ebmbridge/internal/report/repository"
	"github.com/kabisa/ebmbridge/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
