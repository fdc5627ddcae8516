package models

import (
	"gorm.io/gorm"
)

const DefaultSleepQuality = 5

type ExerciseLog struct {
	gorm.Model
	UserID          uint   `gorm:"index:idx_exercise_user_day;not null" json:"user_id"`
	Day             string `gorm:"index:idx_exercise_user_day;size:10;not null" json:"day"`
	Name            string `gorm:"not null" json:"name"`
	CaloriesBurned  int    `json:"calories_burned"`
	DurationMinutes int    `json:"duration_minutes"`
	Type            string `gorm:"size:32" json:"type"`
}

type WaterLog struct {
	gorm.Model
	UserID   uint    `gorm:"index:idx_water_user_day;not null" json:"user_id"`
	Day      string  `gorm:"index:idx_water_user_day;size:10;not null" json:"day"`
	AmountML float64 `json:"amount_ml"`
}

// SleepLog is unique per (user, day); a second log for the same day updates it.
type SleepLog struct {
	gorm.Model
	UserID  uint    `gorm:"uniqueIndex:idx_sleep_user_day;not null" json:"user_id"`
	Day     string  `gorm:"uniqueIndex:idx_sleep_user_day;size:10;not null" json:"day"`
	Hours   float64 `json:"hours"`
	Quality int     `gorm:"default:5" json:"quality"`
}

type WeightLog struct {
	gorm.Model
	UserID uint    `gorm:"index:idx_weight_user_day;not null" json:"user_id"`
	Day    string  `gorm:"index:idx_weight_user_day;size:10;not null" json:"day"`
	Weight float64 `json:"weight"`
}
