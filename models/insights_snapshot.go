package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

// InsightsSnapshot keeps a weekly insights result for history. The payload is
// stored as-is and never parsed back by the services.
type InsightsSnapshot struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"uniqueIndex:idx_insights_user_day;not null" json:"user_id"`
	Day       string         `gorm:"uniqueIndex:idx_insights_user_day;size:10;not null" json:"day"`
	Source    string         `gorm:"size:16" json:"source"`
	Payload   datatypes.JSON `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}
