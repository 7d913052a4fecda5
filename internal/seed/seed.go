// Package seed bootstraps first-run state so a fresh deployment is usable
// before anyone has logged in.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/kabisa/ebmbridge/internal/auth/domain"
	"github.com/kabisa/ebmbridge/internal/auth/password"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@ebmbridge.local"
	defaultAdminPassword = "admin"
	defaultAdminDisplay  = "EBM Bridge Admin"
)

// EnsureAdmin creates the default operator account when the user table is
// empty. The account is flagged is_default so the UI can force a password
// change on first login.
func EnsureAdmin(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&authdomain.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hashed, err := password.Hash(defaultAdminPassword)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		user := authdomain.User{
			ID:           node.Generate(),
			Email:        defaultAdminEmail,
			DisplayName:  defaultAdminDisplay,
			PasswordHash: &hashed,
			IsDefault:    true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return tx.Create(&user).Error
	})
}
