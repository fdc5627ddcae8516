package services

import (
	"context"
	"testing"

	"healthtrack/models"
	"healthtrack/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seed(t *testing.T, db *gorm.DB, rows ...interface{}) {
	t.Helper()
	for _, r := range rows {
		require.NoError(t, db.Create(r).Error)
	}
}

func TestAggregate_SumsOnlyTheUsersDay(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		&models.MealLog{UserID: 1, Day: "2024-03-10", Description: "a", Calories: 500, ProteinG: 20, CarbsG: 50, FatG: 10},
		&models.MealLog{UserID: 1, Day: "2024-03-10", Description: "b", Calories: 700, ProteinG: 30, CarbsG: 60, FatG: 25},
		&models.MealLog{UserID: 1, Day: "2024-03-09", Description: "other day", Calories: 900},
		&models.MealLog{UserID: 2, Day: "2024-03-10", Description: "other user", Calories: 1100},
		&models.ExerciseLog{UserID: 1, Day: "2024-03-10", Name: "run", CaloriesBurned: 300},
		&models.ExerciseLog{UserID: 2, Day: "2024-03-10", Name: "swim", CaloriesBurned: 800},
		&models.WaterLog{UserID: 1, Day: "2024-03-10", AmountML: 500},
		&models.WaterLog{UserID: 1, Day: "2024-03-10", AmountML: 750},
		&models.WaterLog{UserID: 2, Day: "2024-03-10", AmountML: 2000},
		&models.SleepLog{UserID: 1, Day: "2024-03-10", Hours: 7.5, Quality: 8},
	)
	agg := NewDailyAggregator(repository.NewHealthLogRepository(db))

	got, err := agg.Aggregate(context.Background(), 1, "2024-03-10")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-10", got.Date)
	assert.Equal(t, 1200, got.TotalCalories)
	assert.Equal(t, 50.0, got.TotalProteinG)
	assert.Equal(t, 110.0, got.TotalCarbsG)
	assert.Equal(t, 35.0, got.TotalFatG)
	assert.Equal(t, 300, got.TotalExerciseCalories)
	assert.Equal(t, 1250.0, got.TotalWaterML)
	assert.Equal(t, 7.5, got.SleepHours)
	assert.Equal(t, 8, got.SleepQuality)
	assert.Nil(t, got.LatestWeight)

	again, err := agg.Aggregate(context.Background(), 1, "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, got, again)
}

func TestAggregate_EmptyDayIsZeroValued(t *testing.T) {
	agg := NewDailyAggregator(repository.NewHealthLogRepository(newTestDB(t)))

	got, err := agg.Aggregate(context.Background(), 1, "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, models.DailyAggregate{Date: "2024-03-10"}, got)
}

func TestAggregate_SleepQualityDefaultsWhenUnset(t *testing.T) {
	db := newTestDB(t)
	// bypass the column default to simulate a row stored without quality
	seed(t, db, &models.SleepLog{UserID: 1, Day: "2024-03-10", Hours: 6})
	require.NoError(t, db.Model(&models.SleepLog{}).Where("user_id = ?", 1).Update("quality", 0).Error)

	got, err := NewDailyAggregator(repository.NewHealthLogRepository(db)).Aggregate(context.Background(), 1, "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSleepQuality, got.SleepQuality)
}

func TestAggregate_LatestWeightAtOrBeforeDay(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		&models.WeightLog{UserID: 1, Day: "2024-03-01", Weight: 80},
		&models.WeightLog{UserID: 1, Day: "2024-03-05", Weight: 79},
		&models.WeightLog{UserID: 1, Day: "2024-03-05", Weight: 78.5},
		&models.WeightLog{UserID: 1, Day: "2024-03-20", Weight: 77},
		&models.WeightLog{UserID: 2, Day: "2024-03-09", Weight: 60},
	)
	agg := NewDailyAggregator(repository.NewHealthLogRepository(db))

	got, err := agg.Aggregate(context.Background(), 1, "2024-03-10")
	require.NoError(t, err)
	require.NotNil(t, got.LatestWeight)
	assert.Equal(t, 78.5, *got.LatestWeight)

	got, err = agg.Aggregate(context.Background(), 1, "2024-02-28")
	require.NoError(t, err)
	assert.Nil(t, got.LatestWeight)
}

func TestAggregate_InvalidDay(t *testing.T) {
	agg := NewDailyAggregator(repository.NewHealthLogRepository(newTestDB(t)))
	_, err := agg.Aggregate(context.Background(), 1, "10/03/2024")
	assert.ErrorIs(t, err, ErrInvalidDay)
}

func TestAggregateRange_ZeroFillsMissingDays(t *testing.T) {
	db := newTestDB(t)
	seed(t, db,
		&models.MealLog{UserID: 1, Day: "2024-02-28", Description: "a", Calories: 400},
		&models.MealLog{UserID: 1, Day: "2024-03-01", Description: "b", Calories: 600},
		&models.MealLog{UserID: 1, Day: "2024-03-05", Description: "outside", Calories: 999},
	)
	agg := NewDailyAggregator(repository.NewHealthLogRepository(db))

	got, err := agg.AggregateRange(context.Background(), 1, "2024-02-27", 4)
	require.NoError(t, err)
	require.Len(t, got, 4)

	var dates []string
	var cals []int
	for _, a := range got {
		dates = append(dates, a.Date)
		cals = append(cals, a.TotalCalories)
	}
	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"}, dates)
	assert.Equal(t, []int{0, 400, 0, 600}, cals)
}

func TestAggregateRange_NonPositiveCount(t *testing.T) {
	agg := NewDailyAggregator(repository.NewHealthLogRepository(newTestDB(t)))

	got, err := agg.AggregateRange(context.Background(), 1, "2024-03-01", 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = agg.AggregateRange(context.Background(), 1, "nope", 3)
	assert.ErrorIs(t, err, ErrInvalidDay)
}
