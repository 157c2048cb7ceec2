package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/reciply/reciply/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, receipt *Receipt) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Receipt, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID string, page pagination.Pagination) ([]*Receipt, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
