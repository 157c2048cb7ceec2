package billing

import (
	"github.com/reciply/reciply/internal/billing/repository"
	"github.com/reciply/reciply/internal/billing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billing.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
