package extract

import (
	"github.com/reciply/reciply/internal/extract/service"
	"go.uber.org/fx"
)

var Module = fx.Module("extract.service",
	fx.Provide(service.NewModelClient),
	fx.Provide(service.New),
)
