package migration

import (
	"github.com/kabisa/ebmbridge/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB) error {
		if err := RunMigrations(conn); err != nil {
			return err
		}
		return seed.EnsureAdmin(conn)
	}),
)
