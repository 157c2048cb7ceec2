package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/reciply/reciply/internal/asset/domain"
	"github.com/reciply/reciply/internal/clock"
	"github.com/reciply/reciply/internal/config"
	"github.com/reciply/reciply/internal/storage"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var logoExtensions = map[string]string{
	"image/png":     "png",
	"image/jpeg":    "jpg",
	"image/svg+xml": "svg",
}

type Params struct {
	fx.In

	Config config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	Clock  clock.Clock
	Node   *snowflake.Node
	Store  storage.BlobStore
	Repo   domain.Repository
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	clock  clock.Clock
	node   *snowflake.Node
	store  storage.BlobStore
	repo   domain.Repository
	bucket string
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("asset.service"),
		clock:  p.Clock,
		node:   p.Node,
		store:  p.Store,
		repo:   p.Repo,
		bucket: p.Config.Storage.UploadBucket,
	}
}

func (s *Service) UploadLogo(ctx context.Context, userID string, data []byte, contentType string) (domain.Asset, error) {
	ext, ok := logoExtensions[contentType]
	if !ok {
		return domain.Asset{}, domain.ErrUnsupportedType
	}
	if len(data) > domain.MaxLogoBytes {
		return domain.Asset{}, domain.ErrTooLarge
	}

	key := fmt.Sprintf("%s/logo-%d.%s", userID, s.clock.Now().UnixMilli(), ext)
	if err := s.store.Put(ctx, s.bucket, key, data, contentType); err != nil {
		return domain.Asset{}, err
	}

	asset := domain.Asset{
		ID:          s.node.Generate(),
		UserID:      userID,
		URL:         s.store.PublicURL(s.bucket, key),
		Kind:        "logo",
		ContentType: contentType,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.repo.Insert(ctx, s.db, &asset); err != nil {
		return domain.Asset{}, err
	}

	s.log.Info("uploaded logo", zap.String("user_id", userID), zap.String("url", asset.URL))
	return asset, nil
}
