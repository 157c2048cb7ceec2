package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Asset is one user-uploaded file, currently always a business logo
// referenced from receipt layouts by URL.
type Asset struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID      string       `gorm:"not null;index" json:"user_id"`
	URL         string       `gorm:"not null" json:"url"`
	Kind        string       `gorm:"not null;default:logo" json:"kind"`
	ContentType string       `gorm:"not null" json:"content_type"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}
