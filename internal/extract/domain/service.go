package domain

import (
	"context"
	"errors"

	"github.com/reciply/reciply/internal/layout"
)

// Service turns a photographed or scanned receipt into a layout the
// renderer can reproduce. Extraction is best-effort: callers always get a
// usable layout back, falling to the default when the model output is
// unusable.
type Service interface {
	ExtractLayout(ctx context.Context, image []byte, mimeType string) (layout.Layout, error)
}

var (
	ErrUnsupportedImage = errors.New("unsupported_image_type")
	ErrNotConfigured    = errors.New("extraction_not_configured")
)
