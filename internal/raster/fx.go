package raster

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

func provideRasterizer(lc fx.Lifecycle, log *zap.Logger) Rasterizer {
	chrome := NewChrome(log)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			chrome.Close()
			return nil
		},
	})
	return chrome
}

var Module = fx.Module("raster",
	fx.Provide(provideRasterizer),
)
