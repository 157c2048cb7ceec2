package repository

import (
	"context"
	"time"

	"github.com/reciply/reciply/internal/user/domain"
	"github.com/reciply/reciply/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO users (id, email, credits, is_admin, is_banned, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.Credits,
		user.IsAdmin,
		user.IsBanned,
		user.CreatedAt,
		user.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).Raw(
		`SELECT id, email, credits, is_admin, is_banned, created_at, updated_at
		 FROM users WHERE id = ?`,
		id,
	).Scan(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, nil
	}
	return &user, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListUserFilter, page pagination.Pagination) ([]*domain.User, error) {
	var users []*domain.User
	stmt := db.WithContext(ctx).Model(&domain.User{})
	if filter.Email != "" {
		stmt = stmt.Where("email = ?", filter.Email)
	}
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err == nil && cursor.CreatedAt != "" {
			if before, parseErr := time.Parse(time.RFC3339Nano, cursor.CreatedAt); parseErr == nil {
				if cursor.ID != "" {
					// Tiebreak on id so rows sharing the boundary timestamp
					// are not skipped.
					stmt = stmt.Where("created_at < ? OR (created_at = ? AND id < ?)", before, before, cursor.ID)
				} else {
					stmt = stmt.Where("created_at < ?", before)
				}
			}
		}
	}
	if page.PageSize > 0 {
		stmt = stmt.Limit(page.PageSize + 1)
	}
	err := stmt.
		Order("created_at desc, id desc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *repo) UpdateCredits(ctx context.Context, db *gorm.DB, id string, credits int64) error {
	return db.WithContext(ctx).Exec(
		`UPDATE users SET credits = ?, updated_at = ? WHERE id = ?`,
		credits,
		time.Now().UTC(),
		id,
	).Error
}

func (r *repo) DecrementCredits(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE users SET credits = credits - 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(),
		id,
	).Error
}

func (r *repo) UpdateBanned(ctx context.Context, db *gorm.DB, id string, banned bool) error {
	return db.WithContext(ctx).Exec(
		`UPDATE users SET is_banned = ?, updated_at = ? WHERE id = ?`,
		banned,
		time.Now().UTC(),
		id,
	).Error
}
