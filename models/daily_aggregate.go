package models

// DailyAggregate is recomputed from the log tables on every read.
type DailyAggregate struct {
	Date                  string   `json:"date"`
	TotalCalories         int      `json:"total_calories"`
	TotalProteinG         float64  `json:"total_protein_g"`
	TotalCarbsG           float64  `json:"total_carbs_g"`
	TotalFatG             float64  `json:"total_fat_g"`
	TotalWaterML          float64  `json:"total_water_ml"`
	TotalExerciseCalories int      `json:"total_exercise_calories"`
	SleepHours            float64  `json:"sleep_hours"`
	SleepQuality          int      `json:"sleep_quality"` // 0 when no sleep was logged
	LatestWeight          *float64 `json:"latest_weight"`
}

// DailyMetrics is the per-day view handed to the insights prompt.
type DailyMetrics struct {
	Calories         int     `json:"calories"`
	ProteinG         float64 `json:"protein_g"`
	CarbsG           float64 `json:"carbs_g"`
	FatG             float64 `json:"fat_g"`
	WaterML          float64 `json:"water_ml"`
	ExerciseCalories int     `json:"exercise_calories"`
	SleepHours       float64 `json:"sleep_hours"`
}

func (a DailyAggregate) Metrics() DailyMetrics {
	return DailyMetrics{
		Calories:         a.TotalCalories,
		ProteinG:         a.TotalProteinG,
		CarbsG:           a.TotalCarbsG,
		FatG:             a.TotalFatG,
		WaterML:          a.TotalWaterML,
		ExerciseCalories: a.TotalExerciseCalories,
		SleepHours:       a.SleepHours,
	}
}

const (
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Suggestion is generated per request and never stored.
type Suggestion struct {
	Severity string `json:"severity"` // "warning" | "info"
	IconTag  string `json:"icon_tag"`
	Message  string `json:"message"`
}
