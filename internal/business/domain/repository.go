package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, business *Business) error
	Update(ctx context.Context, db *gorm.DB, business *Business) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Business, error)
	FindByTIN(ctx context.Context, db *gorm.DB, tin string) (*Business, error)
	List(ctx context.Context, db *gorm.DB, activeOnly bool) ([]*Business, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
