package repository

import (
	"context"
	"time"

	"github.com/reciply/reciply/internal/billing/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, sub *domain.Subscription) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO subscriptions (id, user_id, provider_customer_id, provider_subscription_id, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sub.ID,
		sub.UserID,
		sub.ProviderCustomerID,
		sub.ProviderSubscriptionID,
		sub.Status,
		sub.CreatedAt,
		sub.UpdatedAt,
	).Error
}

func (r *repo) FindByCustomer(ctx context.Context, db *gorm.DB, customerID string) (*domain.Subscription, error) {
	var sub domain.Subscription
	err := db.WithContext(ctx).Raw(
		`SELECT id, user_id, provider_customer_id, provider_subscription_id, status, created_at, updated_at
		 FROM subscriptions WHERE provider_customer_id = ?`,
		customerID,
	).Scan(&sub).Error
	if err != nil {
		return nil, err
	}
	if sub.ID == 0 {
		return nil, nil
	}
	return &sub, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, customerID, subscriptionID, status string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE subscriptions SET provider_subscription_id = ?, status = ?, updated_at = ?
		 WHERE provider_customer_id = ?`,
		subscriptionID,
		status,
		time.Now().UTC(),
		customerID,
	).Error
}
