package services

import (
	"context"
	"testing"

	"healthtrack/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDay_SuggestionsAndNoPredictionWithoutWeight(t *testing.T) {
	env := newEnv(t, nil, nil)
	ctx := context.Background()
	day := "2024-03-10"

	_, err := env.logs.LogMeal(ctx, env.userID, MealInput{Day: day, Description: "burger"})
	require.NoError(t, err)

	view, err := env.dashboard.Day(ctx, env.userID, day)
	require.NoError(t, err)

	assert.Equal(t, day, view.Date)
	assert.Equal(t, models.DefaultCalorieTarget, view.CalorieTarget)
	assert.Equal(t, 500, view.Aggregate.TotalCalories)
	assert.Equal(t, 25.0, view.Progress.CalorieProgress)
	assert.Nil(t, view.PredictedCalories)
	require.NotEmpty(t, view.Suggestions)
	assert.Equal(t, IconCalories, view.Suggestions[0].IconTag)
	assert.Len(t, view.Meals, 1)
}

func TestDay_PredictsOnceWeightAndCaloriesExist(t *testing.T) {
	env := newEnv(t, nil, nil)
	ctx := context.Background()
	day := "2024-03-10"

	_, err := env.logs.LogWeight(ctx, env.userID, day, 80)
	require.NoError(t, err)

	view, err := env.dashboard.Day(ctx, env.userID, day)
	require.NoError(t, err)
	assert.Nil(t, view.PredictedCalories, "no calories logged yet")

	_, err = env.logs.LogMeal(ctx, env.userID, MealInput{Day: day, Description: "pizza"})
	require.NoError(t, err)

	view, err = env.dashboard.Day(ctx, env.userID, day)
	require.NoError(t, err)
	require.NotNil(t, view.PredictedCalories)
	assert.Equal(t, 2000, *view.PredictedCalories)
}

func TestDay_UsesModelAndProfileTarget(t *testing.T) {
	m := &recordingModel{}
	env := newEnv(t, nil, m)
	ctx := context.Background()
	day := "2024-03-10"

	target := 1000
	_, err := env.users.UpdateProfile(ctx, env.userID, ProfileInput{CalorieTarget: &target})
	require.NoError(t, err)
	_, err = env.logs.LogWeight(ctx, env.userID, day, 70)
	require.NoError(t, err)
	_, err = env.logs.LogSleep(ctx, env.userID, SleepInput{Day: day, Hours: 7})
	require.NoError(t, err)
	_, err = env.logs.LogExercise(ctx, env.userID, ExerciseInput{Day: day, Name: "bike", CaloriesBurned: 200})
	require.NoError(t, err)
	_, err = env.logs.LogMeal(ctx, env.userID, MealInput{Day: day, Description: "pasta"})
	require.NoError(t, err)

	view, err := env.dashboard.Day(ctx, env.userID, day)
	require.NoError(t, err)
	assert.Equal(t, 1000, view.CalorieTarget)
	require.NotNil(t, view.PredictedCalories)
	assert.Equal(t, 1849, *view.PredictedCalories)
	assert.Equal(t, [4]float64{70, 7, 200, 300}, m.got)
	// 300 kcal is under 70% of 1000
	assert.Equal(t, IconCalories, view.Suggestions[0].IconTag)
	assert.Equal(t, 30.0, view.Progress.CalorieProgress)
}

func TestDay_InvalidDay(t *testing.T) {
	env := newEnv(t, nil, nil)
	_, err := env.dashboard.Day(context.Background(), env.userID, "yesterday")
	assert.ErrorIs(t, err, ErrInvalidDay)
}

func TestWeeklySummary(t *testing.T) {
	env := newEnv(t, nil, nil)
	ctx := context.Background()

	_, err := env.logs.LogMeal(ctx, env.userID, MealInput{Day: "2024-03-04", Description: "salad"})
	require.NoError(t, err)
	_, err = env.logs.LogMeal(ctx, env.userID, MealInput{Day: "2024-03-10", Description: "pizza"})
	require.NoError(t, err)
	_, err = env.logs.LogWeight(ctx, env.userID, "2024-03-06", 81)
	require.NoError(t, err)
	_, err = env.logs.LogMeal(ctx, env.userID, MealInput{Day: "2024-03-03", Description: "outside the window"})
	require.NoError(t, err)

	sum, err := env.dashboard.WeeklySummary(ctx, env.userID, "2024-03-10")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-04", sum.Start)
	assert.Equal(t, "2024-03-10", sum.End)
	require.Len(t, sum.Days, 7)
	assert.Equal(t, "2024-03-04", sum.Days[0].Date)
	assert.Equal(t, 150, sum.Days[0].Calories)
	assert.Equal(t, 400, sum.Days[6].Calories)
	require.NotNil(t, sum.Days[2].Weight)
	assert.Equal(t, 81.0, *sum.Days[2].Weight)
	assert.Nil(t, sum.Days[3].Weight, "weight is not carried forward")
	assert.Equal(t, 3, sum.DaysWithEntries)
	assert.Equal(t, 78.6, sum.AvgCalories)

	_, err = env.dashboard.WeeklySummary(ctx, env.userID, "03/10/2024")
	assert.ErrorIs(t, err, ErrInvalidDay)
}

func TestSleepHistory(t *testing.T) {
	env := newEnv(t, nil, nil)
	ctx := context.Background()

	h, err := env.dashboard.SleepHistory(ctx, env.userID)
	require.NoError(t, err)
	assert.NotNil(t, h.Entries)
	assert.Zero(t, h.AverageHours)

	days := []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-05", "2024-03-06", "2024-03-07", "2024-03-08"}
	hours := []float64{4, 6, 7, 8, 6.5, 7.5, 5, 9}
	for i, d := range days {
		_, err := env.logs.LogSleep(ctx, env.userID, SleepInput{Day: d, Hours: hours[i]})
		require.NoError(t, err)
	}

	h, err = env.dashboard.SleepHistory(ctx, env.userID)
	require.NoError(t, err)
	require.Len(t, h.Entries, 7)
	assert.Equal(t, "2024-03-02", h.Entries[0].Day)
	assert.Equal(t, "2024-03-08", h.Entries[6].Day)
	assert.Equal(t, 7.0, h.AverageHours)
}

func TestDigest_WithoutPushIsNoop(t *testing.T) {
	env := newEnv(t, nil, nil)
	assert.NoError(t, env.dashboard.Digest(context.Background(), env.userID, "2024-03-10"))
}
