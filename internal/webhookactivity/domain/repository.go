package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, activity *Activity) error
	Update(ctx context.Context, db *gorm.DB, activity *Activity) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Activity, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*Activity, error)
	CountByStatus(ctx context.Context, db *gorm.DB) (map[Status]int64, error)
	CountByType(ctx context.Context, db *gorm.DB) (map[string]int64, error)
	AvgProcessingMs(ctx context.Context, db *gorm.DB) (float64, error)
}
