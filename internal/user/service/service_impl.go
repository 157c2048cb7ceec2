package service

import (
	"context"
	"strings"
	"time"

	"github.com/reciply/reciply/internal/clock"
	"github.com/reciply/reciply/internal/user/domain"
	"github.com/reciply/reciply/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("user.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) EnsureUser(ctx context.Context, id, email string) (domain.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.User{}, domain.ErrInvalidID
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.User{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	now := s.clock.Now()
	user := domain.User{
		ID:        id,
		Email:     strings.TrimSpace(email),
		Credits:   domain.FreeTierCredits,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, &user); err != nil {
		// A concurrent first request may have provisioned the row already.
		if again, findErr := s.repo.FindByID(ctx, s.db, id); findErr == nil && again != nil {
			return *again, nil
		}
		return domain.User{}, err
	}

	s.log.Info("provisioned user", zap.String("user_id", id))
	return user, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.User{}, err
	}
	if user == nil {
		return domain.User{}, domain.ErrNotFound
	}
	return *user, nil
}

func (s *Service) CheckGenerationAllowance(ctx context.Context, id string) (domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if user.IsBanned {
		return domain.User{}, domain.ErrAccountBanned
	}
	if !user.Unlimited() && user.Credits <= 0 {
		return domain.User{}, domain.ErrInsufficientCredits
	}
	return user, nil
}

func (s *Service) ConsumeCredit(ctx context.Context, id string) (int64, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if user.Unlimited() {
		return user.Credits, nil
	}

	if err := s.repo.DecrementCredits(ctx, s.db, id); err != nil {
		return 0, err
	}

	after, err := s.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if after.Credits < 0 {
		// Concurrent balance checks can race past zero; accepted, but loud.
		s.log.Warn("credit balance went negative",
			zap.String("user_id", id),
			zap.Int64("credits", after.Credits),
		)
	}
	return after.Credits, nil
}

func (s *Service) SetCredits(ctx context.Context, id string, credits int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdateCredits(ctx, s.db, id, credits)
}

func (s *Service) SetBanned(ctx context.Context, id string, banned bool) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdateBanned(ctx, s.db, id, banned)
}

func (s *Service) List(ctx context.Context, req domain.ListUserRequest) (domain.ListUserResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 25
	}

	items, err := s.repo.List(ctx, s.db, domain.ListUserFilter{
		Email: strings.TrimSpace(req.Email),
	}, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListUserResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(user *domain.User) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        user.ID,
			CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	users := make([]domain.User, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		users = append(users, *item)
	}

	return domain.ListUserResponse{PageInfo: *pageInfo, Users: users}, nil
}
