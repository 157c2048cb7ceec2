package receipt

import (
	"github.com/reciply/reciply/internal/receipt/repository"
	"github.com/reciply/reciply/internal/receipt/service"
	"go.uber.org/fx"
)

var Module = fx.Module("receipt.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
