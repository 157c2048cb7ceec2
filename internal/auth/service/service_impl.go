package service

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/reciply/reciply/internal/auth/domain"
	"github.com/reciply/reciply/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
}

type Service struct {
	secret []byte
	log    *zap.Logger
}

func New(p Params) domain.Service {
	if p.Config.AuthJWTSecret == "" {
		p.Log.Named("auth.service").Warn("no JWT secret configured, all tokens will be rejected")
	}
	return &Service{
		secret: []byte(p.Config.AuthJWTSecret),
		log:    p.Log.Named("auth.service"),
	}
}

type claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func (s *Service) Verify(_ context.Context, token string) (domain.Identity, error) {
	if len(s.secret) == 0 || strings.TrimSpace(token) == "" {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, domain.ErrExpiredToken
		}
		return domain.Identity{}, domain.ErrInvalidToken
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || c.Subject == "" {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return domain.Identity{UserID: c.Subject, Email: c.Email}, nil
}
