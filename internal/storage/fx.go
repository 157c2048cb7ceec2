package storage

import (
	"github.com/reciply/reciply/internal/config"
	"go.uber.org/fx"
)

func provideBlobStore(cfg config.Config) (BlobStore, error) {
	return NewMinioStore(cfg.Storage)
}

var Module = fx.Module("storage",
	fx.Provide(provideBlobStore),
)
