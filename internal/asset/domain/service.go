package domain

import (
	"context"
	"errors"
)

// MaxLogoBytes caps logo uploads at 2 MiB.
const MaxLogoBytes = 2 << 20

type Service interface {
	UploadLogo(ctx context.Context, userID string, data []byte, contentType string) (Asset, error)
}

var (
	ErrUnsupportedType = errors.New("unsupported_file_type")
	ErrTooLarge        = errors.New("file_too_large")
)
