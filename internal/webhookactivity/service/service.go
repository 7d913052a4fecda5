package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/kabisa/ebmbridge/internal/webhookactivity/domain"
	"github.com/kabisa/ebmbridge/pkg/db/pagination"
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
		log:   p.Log.Named("webhookactivity.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Start(ctx context.Context, req domain.StartRequest) (*domain.Activity, error) {
	docType := strings.TrimSpace(req.DocumentType)
	number := strings.TrimSpace(req.DocumentNumber)
	if docType == "" || number == "" {
		return nil, domain.ErrInvalidDocument
	}

	now := time.Now().UTC()
	activity := &domain.Activity{
		ID:             s.genID.Generate(),
		DocumentType:   docType,
		DocumentNumber: number,
		BusinessTIN:    strings.TrimSpace(req.BusinessTIN),
		CustomerTIN:    strings.TrimSpace(req.CustomerTIN),
		Status:         domain.StatusPending,
		WebhookPayload: req.WebhookPayload,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, s.db, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *Service) MarkSuccess(ctx context.Context, id snowflake.ID, req domain.MarkSuccessRequest) error {
	activity, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	activity.Status = domain.StatusSuccess
	activity.InvoiceNumber = req.InvoiceNumber
	activity.ReceiptNumber = req.ReceiptNumber
	activity.ReceiptSign = req.ReceiptSign
	activity.VSDCRequest = marshal(s.log, req.VSDCRequest)
	activity.VSDCResponse = marshal(s.log, req.VSDCResponse)
	activity.ProcessingMs = req.ProcessingMs
	activity.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, s.db, activity)
}

func (s *Service) MarkPDF(ctx context.Context, id snowflake.ID, filename string, generated bool) error {
	activity, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	activity.PDFGenerated = generated
	activity.PDFFilename = filename
	activity.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, s.db, activity)
}

func (s *Service) MarkFailure(ctx context.Context, id snowflake.ID, req domain.MarkFailureRequest) error {
	activity, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	status := req.Status
	if status == "" {
		status = domain.StatusFailed
	}

	activity.Status = status
	activity.InvoiceNumber = req.InvoiceNumber
	activity.ErrorType = req.ErrorType
	activity.ErrorCode = req.ErrorCode
	activity.ErrorMessage = req.ErrorMessage
	activity.VSDCRequest = marshal(s.log, req.VSDCRequest)
	activity.VSDCResponse = marshal(s.log, req.VSDCResponse)
	activity.ProcessingMs = req.ProcessingMs
	activity.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, s.db, activity)
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*domain.Activity, error) {
	return s.find(ctx, id)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Activity, *pagination.PageInfo, error) {
	limit := req.Limit
	if limit <= 0 || limit > 250 {
		limit = 50
	}

	filter := domain.ListFilter{
		DocumentType: strings.TrimSpace(req.DocumentType),
		BusinessTIN:  strings.TrimSpace(req.BusinessTIN),
		Status:       domain.Status(strings.TrimSpace(req.Status)),
		From:         req.From,
		To:           req.To,
		Limit:        limit,
	}
	if token := strings.TrimSpace(req.PageToken); token != "" {
		cursor, err := pagination.DecodeCursor(token)
		if err != nil {
			return nil, nil, domain.ErrInvalidPageToken
		}
		filter.Cursor = cursor
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		return nil, nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, int32(limit), func(a *domain.Activity) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        a.ID.String(),
			CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		if err != nil {
			s.log.Warn("failed to encode page cursor", zap.Error(err))
			return ""
		}
		return token
	})
	if len(items) > limit {
		items = items[:limit]
	}

	activities := make([]domain.Activity, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		activities = append(activities, *item)
	}
	return activities, pageInfo, nil
}

func (s *Service) Stats(ctx context.Context) (domain.Stats, error) {
	counts, err := s.repo.CountByStatus(ctx, s.db)
	if err != nil {
		return domain.Stats{}, err
	}
	byType, err := s.repo.CountByType(ctx, s.db)
	if err != nil {
		return domain.Stats{}, err
	}
	avgMs, err := s.repo.AvgProcessingMs(ctx, s.db)
	if err != nil {
		return domain.Stats{}, err
	}

	stats := domain.Stats{
		Pending:         counts[domain.StatusPending],
		Success:         counts[domain.StatusSuccess],
		Failed:          counts[domain.StatusFailed],
		Timeout:         counts[domain.StatusTimeout],
		AvgProcessingMs: avgMs,
		ByType:          byType,
	}
	stats.Total = stats.Pending + stats.Success + stats.Failed + stats.Timeout
	if completed := stats.Success + stats.Failed + stats.Timeout; completed > 0 {
		stats.SuccessRate = float64(stats.Success) / float64(completed)
	}
	return stats, nil
}

func (s *Service) find(ctx context.Context, id snowflake.ID) (*domain.Activity, error) {
	activity, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return activity, nil
}

func marshal(log *zap.Logger, v any) []byte {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Warn("failed to snapshot payload", zap.Error(err))
		return nil
	}
	return b
}
