package domain

import (
	"context"
	"errors"

	"github.com/reciply/reciply/internal/layout"
	receiptdomain "github.com/reciply/reciply/internal/receipt/domain"
	"github.com/reciply/reciply/internal/render"
)

// Request is one receipt generation job. Layout is optional; anything
// missing or structurally unusable falls back to the default layout.
type Request struct {
	Layout        *layout.Layout      `json:"layout,omitempty"`
	BusinessInfo  render.BusinessInfo `json:"businessInfo"`
	Items         []render.Item       `json:"items"`
	Subtotal      float64             `json:"subtotal"`
	Tax           float64             `json:"tax"`
	Total         float64             `json:"total"`
	ReceiptNumber string              `json:"receiptNumber,omitempty"`
	Date          string              `json:"date,omitempty"`
	Notes         string              `json:"notes,omitempty"`
}

// Response reports the generated artifacts plus the caller's balance after
// the credit charge.
type Response struct {
	PDFURL           string                `json:"pdfUrl"`
	PNGURL           string                `json:"pngUrl"`
	Receipt          receiptdomain.Receipt `json:"receipt"`
	RemainingCredits int64                 `json:"remainingCredits"`
}

type Service interface {
	Generate(ctx context.Context, userID string, req Request) (Response, error)
}

var (
	ErrMissingBusinessInfo = errors.New("missing_business_info")
	ErrNoItems             = errors.New("no_items")
	ErrRenderFailed        = errors.New("rendering_failure")
)
