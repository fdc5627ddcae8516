package models

import "time"

// UserDevice is a mobile push target registered with SNS.
type UserDevice struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	Platform    string    `gorm:"size:16" json:"platform"` // "android" | "ios"
	TokenHash   string    `gorm:"size:64" json:"-"`
	EndpointARN string    `gorm:"size:256" json:"endpoint_arn"`
	Enabled     bool      `gorm:"default:true" json:"enabled"`
	UpdatedAt   time.Time `json:"updated_at"`
	CreatedAt   time.Time `json:"created_at"`
}
