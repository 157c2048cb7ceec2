package repository

import (
	"context"

	"github.com/reciply/reciply/internal/asset/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, asset *domain.Asset) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO assets (id, user_id, url, kind, content_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		asset.ID,
		asset.UserID,
		asset.URL,
		asset.Kind,
		asset.ContentType,
		asset.CreatedAt,
	).Error
}
