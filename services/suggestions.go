package services

import (
	"math"

	"healthtrack/models"
)

const (
	lowCalorieRatio      = 0.7
	highCalorieRatio     = 1.2
	minWaterML           = 1500.0
	minSleepHours        = 6.0
	minExerciseCalories  = 150
	minProteinG          = 50.0
	defaultWaterTargetML = 2000.0
	defaultExerciseGoal  = 300
)

const (
	IconCalories = "calories"
	IconWater    = "water"
	IconSleep    = "sleep"
	IconExercise = "exercise"
	IconProtein  = "protein"
)

// Progress is the capped completion ratio shown next to the dashboard
// totals. It does not influence suggestions.
type Progress struct {
	CalorieProgress  float64 `json:"calorie_progress"`
	WaterProgress    float64 `json:"water_progress"`
	ExerciseProgress float64 `json:"exercise_progress"`
}

type SuggestionEngine struct{}

func NewSuggestionEngine() *SuggestionEngine { return &SuggestionEngine{} }

// Suggest evaluates every rule against the day, in a fixed order. Several
// rules can fire for the same day.
func (SuggestionEngine) Suggest(agg models.DailyAggregate, calorieTarget int) []models.Suggestion {
	if calorieTarget <= 0 {
		calorieTarget = models.DefaultCalorieTarget
	}
	target := float64(calorieTarget)
	calories := float64(agg.TotalCalories)

	out := []models.Suggestion{}
	if calories < lowCalorieRatio*target {
		out = append(out, models.Suggestion{
			Severity: models.SeverityWarning,
			IconTag:  IconCalories,
			Message:  "Your calorie intake is low today. Consider a nutritious snack.",
		})
	}
	if calories > highCalorieRatio*target {
		out = append(out, models.Suggestion{
			Severity: models.SeverityInfo,
			IconTag:  IconCalories,
			Message:  "You're over your calorie target. Consider a light dinner.",
		})
	}
	if agg.TotalWaterML < minWaterML {
		out = append(out, models.Suggestion{
			Severity: models.SeverityInfo,
			IconTag:  IconWater,
			Message:  "Hydration reminder: aim for 2L of water daily.",
		})
	}
	if agg.SleepHours < minSleepHours {
		out = append(out, models.Suggestion{
			Severity: models.SeverityWarning,
			IconTag:  IconSleep,
			Message:  "Try to get 7-9 hours of sleep for better recovery.",
		})
	}
	if agg.TotalExerciseCalories < minExerciseCalories {
		out = append(out, models.Suggestion{
			Severity: models.SeverityInfo,
			IconTag:  IconExercise,
			Message:  "Consider some light exercise like a 20-minute walk.",
		})
	}
	if agg.TotalProteinG < minProteinG {
		out = append(out, models.Suggestion{
			Severity: models.SeverityInfo,
			IconTag:  IconProtein,
			Message:  "Include more protein in your meals.",
		})
	}
	return out
}

func (SuggestionEngine) Progress(agg models.DailyAggregate, calorieTarget int) Progress {
	if calorieTarget <= 0 {
		calorieTarget = models.DefaultCalorieTarget
	}
	return Progress{
		CalorieProgress:  pct(float64(agg.TotalCalories), float64(calorieTarget)),
		WaterProgress:    pct(agg.TotalWaterML, defaultWaterTargetML),
		ExerciseProgress: pct(float64(agg.TotalExerciseCalories), defaultExerciseGoal),
	}
}

// pct is capped at 100 and rounded to one decimal.
func pct(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	p := actual / target * 100
	if p > 100 {
		p = 100
	}
	return math.Round(p*10) / 10
}
