package domain

import (
	"context"
	"errors"
)

// Identity is the verified caller extracted from a bearer token.
type Identity struct {
	UserID string
	Email  string
}

// Service verifies bearer tokens issued by the identity provider.
type Service interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

var (
	ErrInvalidToken = errors.New("invalid_token")
	ErrExpiredToken = errors.New("expired_token")
)
