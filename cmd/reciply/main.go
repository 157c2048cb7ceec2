package main

import (
	"github.com/reciply/reciply/internal/logger"
	"github.com/reciply/reciply/internal/server"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		logger.Module,
		server.Module,
	).Run()
}
