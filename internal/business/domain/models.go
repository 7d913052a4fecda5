package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Business is a registered seller whose documents the bridge submits. The
// TIN on an incoming document selects the matching registry entry; its
// details are stamped onto the receipt.
type Business struct {
	ID       snowflake.ID `gorm:"primaryKey" json:"id"`
	Name     string       `gorm:"not null" json:"name"`
	TIN      string       `gorm:"not null;uniqueIndex" json:"tin"`
	Email    string       `json:"email,omitempty"`
	Phone    string       `json:"phone,omitempty"`
	Location string       `json:"location,omitempty"`
	Active   bool         `gorm:"not null;default:true" json:"active"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Business) TableName() string {
	return "businesses"
}
