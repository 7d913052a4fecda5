package domain

import (
	"context"
	"errors"
)

type CreateBusinessRequest struct {
	Name     string `json:"name" binding:"required"`
	TIN      string `json:"tin" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type UpdateBusinessRequest struct {
	ID       string
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	Active   *bool   `json:"active"`
}

type Service interface {
	Create(ctx context.Context, req CreateBusinessRequest) (Business, error)
	Update(ctx context.Context, req UpdateBusinessRequest) (Business, error)
	GetByID(ctx context.Context, id string) (Business, error)
	// GetByTIN returns ErrNotFound for unknown or inactive businesses.
	GetByTIN(ctx context.Context, tin string) (Business, error)
	List(ctx context.Context, activeOnly bool) ([]Business, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidTIN  = errors.New("invalid_tin")
	ErrInvalidID   = errors.New("invalid_id")
	ErrDuplicate   = errors.New("duplicate_tin")
	ErrNotFound    = errors.New("not_found")
)
