package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/reciply/reciply/internal/receipt/domain"
	"github.com/reciply/reciply/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, receipt *domain.Receipt) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO receipts (id, user_id, layout_json, business_info_json, items_json,
		 subtotal, tax, total, pdf_url, png_url, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		receipt.ID,
		receipt.UserID,
		receipt.LayoutJSON,
		receipt.BusinessInfoJSON,
		receipt.ItemsJSON,
		receipt.Subtotal,
		receipt.Tax,
		receipt.Total,
		receipt.PDFURL,
		receipt.PNGURL,
		receipt.CreatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Receipt, error) {
	var receipt domain.Receipt
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, layout_json, business_info_json, items_json,
		 subtotal, tax, total, pdf_url, png_url, created_at
		 FROM receipts WHERE id = ?`,
		id,
	).Scan(&receipt).Error
	if err != nil {
		return nil, err
	}
	if receipt.ID == 0 {
		return nil, nil
	}
	return &receipt, nil
}

func (r *repo) ListByUser(ctx context.Context, db *gorm.DB, userID string, page pagination.Pagination) ([]*domain.Receipt, error) {
	var receipts []*domain.Receipt
	stmt := db.WithContext(ctx).Model(&domain.Receipt{}).Where("user_id = ?", userID)
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err == nil && cursor.CreatedAt != "" {
			if before, parseErr := time.Parse(time.RFC3339Nano, cursor.CreatedAt); parseErr == nil {
				// Tiebreak on id so rows sharing the boundary timestamp
				// are not skipped.
				if lastID, idErr := snowflake.ParseString(cursor.ID); idErr == nil {
					stmt = stmt.Where("created_at < ? OR (created_at = ? AND id < ?)", before, before, lastID)
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
		Find(&receipts).Error
	if err != nil {
		return nil, err
	}
	return receipts, nil
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM receipts WHERE id = ?`, id).Error
}
