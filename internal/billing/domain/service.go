package domain

import (
	"context"
	"errors"
)

// Service consumes signed billing-provider webhook deliveries and keeps
// user credit balances in sync with subscription state.
type Service interface {
	HandleEvent(ctx context.Context, payload []byte, signature string) error
}

var ErrInvalidSignature = errors.New("invalid_webhook_signature")
