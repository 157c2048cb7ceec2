package domain

import (
	"context"
	"errors"

	"github.com/reciply/reciply/pkg/db/pagination"
)

type ListReceiptRequest struct {
	PageToken string
	PageSize  int
}

type ListReceiptResponse struct {
	pagination.PageInfo
	Receipts []Receipt `json:"receipts"`
}

type Service interface {
	Insert(ctx context.Context, receipt *Receipt) error
	// List returns the caller's receipts, newest first.
	List(ctx context.Context, userID string, req ListReceiptRequest) (ListReceiptResponse, error)
	// GetByID is owner-scoped unless admin is set.
	GetByID(ctx context.Context, userID, id string, admin bool) (Receipt, error)
	// Delete is owner-scoped unless admin is set.
	Delete(ctx context.Context, userID, id string, admin bool) error
}

var (
	ErrNotFound  = errors.New("receipt_not_found")
	ErrInvalidID = errors.New("invalid_receipt_id")
)
