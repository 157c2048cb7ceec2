package service

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/reciply/reciply/internal/receipt/domain"
	"github.com/reciply/reciply/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("receipt.service"),
		repo: p.Repo,
	}
}

func (s *Service) Insert(ctx context.Context, receipt *domain.Receipt) error {
	return s.repo.Insert(ctx, s.db, receipt)
}

func (s *Service) List(ctx context.Context, userID string, req domain.ListReceiptRequest) (domain.ListReceiptResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 25
	}

	items, err := s.repo.ListByUser(ctx, s.db, userID, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListReceiptResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(receipt *domain.Receipt) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        receipt.ID.String(),
			CreatedAt: receipt.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	receipts := make([]domain.Receipt, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		receipts = append(receipts, *item)
	}

	return domain.ListReceiptResponse{PageInfo: *pageInfo, Receipts: receipts}, nil
}

func (s *Service) GetByID(ctx context.Context, userID, id string, admin bool) (domain.Receipt, error) {
	receipt, err := s.find(ctx, id)
	if err != nil {
		return domain.Receipt{}, err
	}
	if !admin && receipt.UserID != userID {
		// Do not leak existence of other users' receipts.
		return domain.Receipt{}, domain.ErrNotFound
	}
	return *receipt, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string, admin bool) error {
	receipt, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !admin && receipt.UserID != userID {
		return domain.ErrNotFound
	}
	if err := s.repo.Delete(ctx, s.db, receipt.ID); err != nil {
		return err
	}
	s.log.Info("deleted receipt",
		zap.String("receipt_id", receipt.ID.String()),
		zap.String("user_id", receipt.UserID),
	)
	return nil
}

func (s *Service) find(ctx context.Context, id string) (*domain.Receipt, error) {
	parsed, err := snowflake.ParseString(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}
	receipt, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, domain.ErrNotFound
	}
	return receipt, nil
}
