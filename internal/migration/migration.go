// Package migration creates the bridge's tables on startup so local and
// self-hosted deployments work out of the box.
package migration

import (
	"errors"

	authdomain "github.com/kabisa/ebmbridge/internal/auth/domain"
	businessdomain "github.com/kabisa/ebmbridge/internal/business/domain"
	reportdomain "github.com/kabisa/ebmbridge/internal/report/domain"
	wadomain "github.com/kabisa/ebmbridge/internal/webhookactivity/domain"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	return db.AutoMigrate(
		&authdomain.User{},
		&businessdomain.Business{},
		&wadomain.Activity{},
		&reportdomain.Transaction{},
		&reportdomain.DailyReport{},
	)
}
