package auth

import (
	"github.com/kabisa/ebmbridge/internal/auth/repository"
	"github.com/kabisa/ebmbridge/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
