package ratelimit

import (
	"context"

	"github.com/reciply/reciply/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Generation throttles receipt generation per user on top of the credit
// system, guarding the headless-browser pool against bursts. It is a no-op
// when Redis is not configured.
type Generation struct {
	bucket *TokenBucket
	log    *zap.Logger

	// Rate is tokens per second, Burst the instantaneous cap.
	Rate  float64
	Burst int
}

type GenerationParams struct {
	fx.In

	Log    *zap.Logger
	Client *redis.Client `optional:"true"`
}

func NewGenerationLimiter(p GenerationParams) *Generation {
	return &Generation{
		bucket: NewTokenBucket(p.Client),
		log:    p.Log.Named("ratelimit"),
		Rate:   0.5,
		Burst:  5,
	}
}

// Allow reports whether the user may start a generation now. Limiter
// errors fail open so a Redis outage never blocks paying users.
func (g *Generation) Allow(ctx context.Context, userID string) (*Result, bool) {
	if g.bucket == nil {
		return nil, true
	}
	res, err := g.bucket.Allow(ctx, "ratelimit:generate:"+userID, g.Rate, g.Burst)
	if err != nil {
		g.log.Warn("rate limiter unavailable", zap.Error(err))
		return nil, true
	}
	return res, res.Allowed
}

// NewRedisClient dials Redis when an address is configured, otherwise the
// limiter runs disabled.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) *redis.Client {
	if cfg.Redis.Addr == "" {
		log.Named("ratelimit").Info("redis not configured, rate limiting disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client
}
