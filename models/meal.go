package models

import (
	"gorm.io/gorm"
)

const (
	PortionSmall  = "small"
	PortionNormal = "normal"
	PortionLarge  = "large"
)

const (
	CategoryBreakfast = "breakfast"
	CategoryLunch     = "lunch"
	CategoryDinner    = "dinner"
	CategorySnack     = "snack"
	CategoryMeal      = "meal"
)

// MealLog is one logged meal with its nutrition snapshot. Rows are never
// edited after creation; they are only deleted.
type MealLog struct {
	gorm.Model
	UserID      uint   `gorm:"index:idx_meal_user_day;not null" json:"user_id"`
	Day         string `gorm:"index:idx_meal_user_day;size:10;not null" json:"day"` // YYYY-MM-DD
	Description string `gorm:"type:text;not null" json:"description"`
	PortionSize string `gorm:"size:10;default:normal" json:"portion_size"`

	Calories    int     `json:"calories"`
	ProteinG    float64 `json:"protein_g"`
	CarbsG      float64 `json:"carbs_g"`
	FatG        float64 `json:"fat_g"`
	FiberG      float64 `json:"fiber_g"`
	SodiumMg    float64 `json:"sodium_mg"`
	Category    string  `gorm:"size:16" json:"category"`
	HealthScore int     `json:"health_score"`
	AIAnalyzed  bool    `json:"ai_analyzed"`
}

func IsPortionSize(s string) bool {
	switch s {
	case PortionSmall, PortionNormal, PortionLarge:
		return true
	}
	return false
}

func IsMealCategory(s string) bool {
	switch s {
	case CategoryBreakfast, CategoryLunch, CategoryDinner, CategorySnack, CategoryMeal:
		return true
	}
	return false
}
