package domain

import (
	"context"
	"errors"

	"github.com/reciply/reciply/pkg/db/pagination"
)

type ListUserRequest struct {
	PageToken string
	PageSize  int
	Email     string
}

type ListUserResponse struct {
	pagination.PageInfo
	Users []User `json:"users"`
}

type Service interface {
	// EnsureUser provisions the account row on first authenticated contact.
	EnsureUser(ctx context.Context, id, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	// CheckGenerationAllowance enforces the ban flag and credit balance.
	CheckGenerationAllowance(ctx context.Context, id string) (User, error)
	// ConsumeCredit decrements the balance by exactly one and returns the
	// remaining balance. Unlimited balances are returned untouched.
	ConsumeCredit(ctx context.Context, id string) (int64, error)
	SetCredits(ctx context.Context, id string, credits int64) error
	SetBanned(ctx context.Context, id string, banned bool) error
	List(ctx context.Context, req ListUserRequest) (ListUserResponse, error)
}

var (
	ErrNotFound            = errors.New("user_not_found")
	ErrAccountBanned       = errors.New("account_banned")
	ErrInsufficientCredits = errors.New("insufficient_credits")
	ErrInvalidID           = errors.New("invalid_user_id")
)
