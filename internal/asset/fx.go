package asset

import (
	"github.com/reciply/reciply/internal/asset/repository"
	"github.com/reciply/reciply/internal/asset/service"
	"go.uber.org/fx"
)

var Module = fx.Module("asset.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
