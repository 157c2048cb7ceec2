package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, sub *Subscription) error
	FindByCustomer(ctx context.Context, db *gorm.DB, customerID string) (*Subscription, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, customerID, subscriptionID, status string) error
}
