package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Receipt is one generated receipt: the layout and data it was produced
// from plus URLs to the two rendered artifacts. Rows are immutable after
// insert except for deletion by their owner.
type Receipt struct {
	ID               snowflake.ID   `gorm:"primaryKey" json:"id"`
	UserID           string         `gorm:"not null;index" json:"user_id"`
	LayoutJSON       datatypes.JSON `gorm:"column:layout_json;type:jsonb;not null;default:'{}'" json:"layout"`
	BusinessInfoJSON datatypes.JSON `gorm:"column:business_info_json;type:jsonb;not null;default:'{}'" json:"business_info"`
	ItemsJSON        datatypes.JSON `gorm:"column:items_json;type:jsonb;not null;default:'[]'" json:"items"`
	Subtotal         float64        `gorm:"not null;default:0" json:"subtotal"`
	Tax              float64        `gorm:"not null;default:0" json:"tax"`
	Total            float64        `gorm:"not null;default:0" json:"total"`
	PDFURL           string         `gorm:"column:pdf_url;not null" json:"pdf_url"`
	PNGURL           string         `gorm:"column:png_url;not null" json:"png_url"`
	CreatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}
