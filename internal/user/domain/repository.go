package domain

import (
	"context"

	"github.com/reciply/reciply/pkg/db/pagination"
	"gorm.io/gorm"
)

type ListUserFilter struct {
	Email string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	FindByID(ctx context.Context, db *gorm.DB, id string) (*User, error)
	List(ctx context.Context, db *gorm.DB, filter ListUserFilter, page pagination.Pagination) ([]*User, error)
	UpdateCredits(ctx context.Context, db *gorm.DB, id string, credits int64) error
	// DecrementCredits applies a single atomic credits = credits - 1.
	DecrementCredits(ctx context.Context, db *gorm.DB, id string) error
	UpdateBanned(ctx context.Context, db *gorm.DB, id string, banned bool) error
}
