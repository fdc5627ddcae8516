package models

import (
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultCalorieTarget = 2000
	DefaultActivityLevel = "moderate"
)

var ActivityLevels = []string{"sedentary", "light", "moderate", "active", "very_active"}

// UserProfile holds the per-user targets and preferences. One row per user,
// created with defaults at registration.
type UserProfile struct {
	gorm.Model
	UserID             uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	Age                int     `json:"age"`
	Gender             string  `json:"gender"`
	HeightCm           float64 `json:"height_cm"`
	WeightKg           float64 `json:"weight_kg"`
	ActivityLevel      string  `gorm:"default:moderate" json:"activity_level"`
	HealthGoals        string  `json:"health_goals"`        // comma-separated tags
	DietaryPreferences string  `json:"dietary_preferences"` // comma-separated tags
	CalorieTarget      int     `gorm:"default:2000" json:"calorie_target"`
}

func NewDefaultProfile(userID uint) UserProfile {
	return UserProfile{
		UserID:        userID,
		ActivityLevel: DefaultActivityLevel,
		CalorieTarget: DefaultCalorieTarget,
	}
}

func (p UserProfile) Goals() []string       { return SplitTags(p.HealthGoals) }
func (p UserProfile) Preferences() []string { return SplitTags(p.DietaryPreferences) }

// EffectiveCalorieTarget never returns a non-positive target.
func (p UserProfile) EffectiveCalorieTarget() int {
	if p.CalorieTarget <= 0 {
		return DefaultCalorieTarget
	}
	return p.CalorieTarget
}

func IsActivityLevel(s string) bool {
	for _, l := range ActivityLevels {
		if l == s {
			return true
		}
	}
	return false
}

// SplitTags parses a comma-separated tag list, dropping blanks.
func SplitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func JoinTags(tags []string) string {
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, ",")
}
