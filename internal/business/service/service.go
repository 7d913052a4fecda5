package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kabisa/ebmbridge/internal/business/domain"
	"github.com/kabisa/ebmbridge/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("business.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateBusinessRequest) (domain.Business, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Business{}, domain.ErrInvalidName
	}

	tin := strings.TrimSpace(req.TIN)
	if !validTIN(tin) {
		return domain.Business{}, domain.ErrInvalidTIN
	}

	now := time.Now().UTC()
	business := domain.Business{
		ID:        s.genID.Generate(),
		Name:      name,
		TIN:       tin,
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Location:  strings.TrimSpace(req.Location),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &business); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Business{}, domain.ErrDuplicate
		}
		return domain.Business{}, err
	}

	return business, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateBusinessRequest) (domain.Business, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Business{}, err
	}

	business, err := s.find(ctx, id)
	if err != nil {
		return domain.Business{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Business{}, domain.ErrInvalidName
		}
		business.Name = name
	}
	if req.Email != nil {
		business.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		business.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Location != nil {
		business.Location = strings.TrimSpace(*req.Location)
	}
	if req.Active != nil {
		business.Active = *req.Active
	}
	business.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, business); err != nil {
		return domain.Business{}, err
	}
	return *business, nil
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Business, error) {
	id, err := parseID(rawID)
	if err != nil {
		return domain.Business{}, err
	}

	business, err := s.find(ctx, id)
	if err != nil {
		return domain.Business{}, err
	}
	return *business, nil
}

func (s *Service) GetByTIN(ctx context.Context, tin string) (domain.Business, error) {
	tin = strings.TrimSpace(tin)
	if tin == "" {
		return domain.Business{}, domain.ErrNotFound
	}

	business, err := s.repo.FindByTIN(ctx, s.db, tin)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Business{}, domain.ErrNotFound
		}
		return domain.Business{}, err
	}
	if !business.Active {
		return domain.Business{}, domain.ErrNotFound
	}
	return *business, nil
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]domain.Business, error) {
	items, err := s.repo.List(ctx, s.db, activeOnly)
	if err != nil {
		return nil, err
	}

	businesses := make([]domain.Business, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		businesses = append(businesses, *item)
	}
	return businesses, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, id)
}

func (s *Service) find(ctx context.Context, id snowflake.ID) (*domain.Business, error) {
	business, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return business, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

// validTIN accepts the 9-digit Rwanda TIN format.
func validTIN(tin string) bool {
	if len(tin) != 9 {
		return false
	}
	for _, r := range tin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
