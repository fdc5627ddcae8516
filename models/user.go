package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Email    string `json:"email,omitempty"` // optional; weekly insight mails only
	Password string `gorm:"not null" json:"-"`

	Profile UserProfile `gorm:"constraint:OnDelete:CASCADE" json:"profile"`
}
