package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kabisa/ebmbridge/internal/webhookactivity/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, activity *domain.Activity) error {
	return db.WithContext(ctx).Create(activity).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, activity *domain.Activity) error {
	return db.WithContext(ctx).Save(activity).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Activity, error) {
	var activity domain.Activity
	err := db.WithContext(ctx).First(&activity, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]*domain.Activity, error) {
	stmt := db.WithContext(ctx).Model(&domain.Activity{})
	if filter.DocumentType != "" {
		stmt = stmt.Where("document_type = ?", filter.DocumentType)
	}
	if filter.BusinessTIN != "" {
		stmt = stmt.Where("business_tin = ?", filter.BusinessTIN)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		stmt = stmt.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		stmt = stmt.Where("created_at <= ?", *filter.To)
	}
	if filter.Cursor != nil {
		if ts, err := time.Parse(time.RFC3339Nano, filter.Cursor.CreatedAt); err == nil {
			stmt = stmt.Where(
				"created_at < ? OR (created_at = ? AND id < ?)",
				ts, ts, filter.Cursor.ID,
			)
		}
	}
	if filter.Limit > 0 {
		// One extra row tells the caller whether more pages exist.
		stmt = stmt.Limit(filter.Limit + 1)
	}

	var activities []*domain.Activity
	err := stmt.Order("created_at desc, id desc").Find(&activities).Error
	if err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *repo) CountByStatus(ctx context.Context, db *gorm.DB) (map[domain.Status]int64, error) {
	type row struct {
		Status domain.Status
		Count  int64
	}
	var rows []row
	err := db.WithContext(ctx).
		Model(&domain.Activity{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.Status]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}

func (r *repo) CountByType(ctx context.Context, db *gorm.DB) (map[string]int64, error) {
	type row struct {
		DocumentType string
		Count        int64
	}
	var rows []row
	err := db.WithContext(ctx).
		Model(&domain.Activity{}).
		Select("document_type, count(*) as count").
		Group("document_type").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.DocumentType] = r.Count
	}
	return counts, nil
}

func (r *repo) AvgProcessingMs(ctx context.Context, db *gorm.DB) (float64, error) {
	var avg float64
	err := db.WithContext(ctx).
		Model(&domain.Activity{}).
		Where("processing_ms > 0").
		Select("coalesce(avg(processing_ms), 0)").
		Scan(&avg).Error
	return avg, err
}
