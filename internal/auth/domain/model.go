// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User is an operator account for the bridge dashboard and admin API.
type User struct {
	ID                  snowflake.ID `gorm:"primaryKey" json:"id"`
	Email               string       `gorm:"type:text;not null;uniqueIndex" json:"email"`
	DisplayName         string       `gorm:"type:text" json:"display_name"`
	PasswordHash        *string      `gorm:"type:text" json:"-"`
	IsDefault           bool         `gorm:"column:is_default" json:"is_default"`
	LastPasswordChanged *time.Time   `gorm:"column:last_password_changed" json:"last_password_changed,omitempty"`
	CreatedAt           time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Claims is the verified content of an access token.
type Claims struct {
	UserID snowflake.ID
	Email  string
}
