package user

import (
	"github.com/reciply/reciply/internal/user/repository"
	"github.com/reciply/reciply/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
