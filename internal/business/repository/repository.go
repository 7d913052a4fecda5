package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/kabisa/ebmbridge/internal/business/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, business *domain.Business) error {
	return db.WithContext(ctx).Create(business).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, business *domain.Business) error {
	return db.WithContext(ctx).Save(business).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Business, error) {
	var business domain.Business
	err := db.WithContext(ctx).First(&business, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *repo) FindByTIN(ctx context.Context, db *gorm.DB, tin string) (*domain.Business, error) {
	var business domain.Business
	err := db.WithContext(ctx).First(&business, "tin = ?", tin).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, activeOnly bool) ([]*domain.Business, error) {
	stmt := db.WithContext(ctx).Model(&domain.Business{})
	if activeOnly {
		stmt = stmt.Where("active = ?", true)
	}

	var businesses []*domain.Business
	err := stmt.Order("name asc").Find(&businesses).Error
	if err != nil {
		return nil, err
	}
	return businesses, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Delete(&domain.Business{}, "id = ?", id).Error
}
