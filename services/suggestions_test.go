package services

import (
	"testing"

	"healthtrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func icons(s []models.Suggestion) []string {
	out := make([]string, 0, len(s))
	for _, x := range s {
		out = append(out, x.Severity+":"+x.IconTag)
	}
	return out
}

// healthyDay triggers no rule at a 2000 kcal target.
func healthyDay() models.DailyAggregate {
	return models.DailyAggregate{
		TotalCalories:         2000,
		TotalProteinG:         80,
		TotalWaterML:          2000,
		TotalExerciseCalories: 300,
		SleepHours:            8,
	}
}

func TestSuggest_RuleOrder(t *testing.T) {
	agg := models.DailyAggregate{
		TotalCalories:         1200,
		TotalWaterML:          1000,
		SleepHours:            5,
		TotalExerciseCalories: 50,
		TotalProteinG:         40,
	}

	got := NewSuggestionEngine().Suggest(agg, 2000)

	assert.Equal(t, []string{
		"warning:calories",
		"info:water",
		"warning:sleep",
		"info:exercise",
		"info:protein",
	}, icons(got))
	for _, s := range got {
		assert.NotEmpty(t, s.Message)
	}
}

func TestSuggest_HealthyDayHasNoSuggestions(t *testing.T) {
	got := NewSuggestionEngine().Suggest(healthyDay(), 2000)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSuggest_CalorieBoundariesAreStrict(t *testing.T) {
	e := NewSuggestionEngine()
	cases := []struct {
		calories int
		want     []string
	}{
		{1399, []string{"warning:calories"}},
		{1400, []string{}},
		{2400, []string{}},
		{2401, []string{"info:calories"}},
	}
	for _, tc := range cases {
		agg := healthyDay()
		agg.TotalCalories = tc.calories
		assert.Equal(t, tc.want, icons(e.Suggest(agg, 2000)), "calories=%d", tc.calories)
	}
}

func TestSuggest_OtherBoundaries(t *testing.T) {
	e := NewSuggestionEngine()

	agg := healthyDay()
	agg.TotalWaterML = 1500
	agg.SleepHours = 6
	agg.TotalExerciseCalories = 150
	agg.TotalProteinG = 50
	assert.Empty(t, e.Suggest(agg, 2000))

	agg.TotalWaterML = 1499.9
	agg.SleepHours = 5.9
	agg.TotalExerciseCalories = 149
	agg.TotalProteinG = 49.9
	assert.Equal(t, []string{"info:water", "warning:sleep", "info:exercise", "info:protein"}, icons(e.Suggest(agg, 2000)))
}

func TestSuggest_NonPositiveTargetUsesDefault(t *testing.T) {
	agg := healthyDay()
	agg.TotalCalories = 1000
	assert.Equal(t, []string{"warning:calories"}, icons(NewSuggestionEngine().Suggest(agg, 0)))
}

func TestProgress_IsCapped(t *testing.T) {
	p := NewSuggestionEngine().Progress(models.DailyAggregate{
		TotalCalories:         3000,
		TotalWaterML:          1000,
		TotalExerciseCalories: 100,
	}, 2000)

	assert.Equal(t, 100.0, p.CalorieProgress)
	assert.Equal(t, 50.0, p.WaterProgress)
	assert.Equal(t, 33.3, p.ExerciseProgress)
}
