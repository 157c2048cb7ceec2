package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Subscription links a billing-provider customer to a local user so
// webhook events can be attributed. One row per provider customer.
type Subscription struct {
	ID                     snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID                 string       `gorm:"not null" json:"user_id"`
	ProviderCustomerID     string       `gorm:"column:provider_customer_id;not null;uniqueIndex" json:"provider_customer_id"`
	ProviderSubscriptionID string       `gorm:"column:provider_subscription_id;not null" json:"provider_subscription_id"`
	Status                 string       `gorm:"not null" json:"status"`
	CreatedAt              time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt              time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
