package services

import (
	"context"
	"fmt"

	"healthtrack/models"
	"healthtrack/utils"
)

// DayRecordStore is the read side of the log tables. Every query is scoped
// to one user and one calendar day.
type DayRecordStore interface {
	MealsForDay(ctx context.Context, userID uint, day string) ([]models.MealLog, error)
	ExercisesForDay(ctx context.Context, userID uint, day string) ([]models.ExerciseLog, error)
	WaterTotalForDay(ctx context.Context, userID uint, day string) (float64, error)
	// SleepForDay returns nil when nothing was logged.
	SleepForDay(ctx context.Context, userID uint, day string) (*models.SleepLog, error)
	// LatestWeightOnOrBefore returns nil when no weight exists up to day.
	LatestWeightOnOrBefore(ctx context.Context, userID uint, day string) (*models.WeightLog, error)
}

type DailyAggregator struct{ store DayRecordStore }

func NewDailyAggregator(store DayRecordStore) *DailyAggregator {
	return &DailyAggregator{store: store}
}

func (a *DailyAggregator) Aggregate(ctx context.Context, userID uint, day string) (models.DailyAggregate, error) {
	if _, err := utils.ParseDay(day); err != nil {
		return models.DailyAggregate{}, ErrInvalidDay
	}
	agg := models.DailyAggregate{Date: day}

	meals, err := a.store.MealsForDay(ctx, userID, day)
	if err != nil {
		return models.DailyAggregate{}, fmt.Errorf("load meals: %w", err)
	}
	for _, m := range meals {
		agg.TotalCalories += m.Calories
		agg.TotalProteinG += m.ProteinG
		agg.TotalCarbsG += m.CarbsG
		agg.TotalFatG += m.FatG
	}

	exercises, err := a.store.ExercisesForDay(ctx, userID, day)
	if err != nil {
		return models.DailyAggregate{}, fmt.Errorf("load exercise: %w", err)
	}
	for _, e := range exercises {
		agg.TotalExerciseCalories += e.CaloriesBurned
	}

	if agg.TotalWaterML, err = a.store.WaterTotalForDay(ctx, userID, day); err != nil {
		return models.DailyAggregate{}, fmt.Errorf("load water: %w", err)
	}

	sleep, err := a.store.SleepForDay(ctx, userID, day)
	if err != nil {
		return models.DailyAggregate{}, fmt.Errorf("load sleep: %w", err)
	}
	if sleep != nil {
		agg.SleepHours = sleep.Hours
		agg.SleepQuality = sleep.Quality
		if agg.SleepQuality == 0 {
			agg.SleepQuality = models.DefaultSleepQuality
		}
	}

	weight, err := a.store.LatestWeightOnOrBefore(ctx, userID, day)
	if err != nil {
		return models.DailyAggregate{}, fmt.Errorf("load weight: %w", err)
	}
	if weight != nil {
		w := weight.Weight
		agg.LatestWeight = &w
	}

	return agg, nil
}

// AggregateRange returns exactly dayCount aggregates starting at startDay,
// oldest first. Days without records come back zero-valued.
func (a *DailyAggregator) AggregateRange(ctx context.Context, userID uint, startDay string, dayCount int) ([]models.DailyAggregate, error) {
	days, err := utils.DayRange(startDay, dayCount)
	if err != nil {
		return nil, ErrInvalidDay
	}
	out := make([]models.DailyAggregate, 0, len(days))
	for _, d := range days {
		agg, err := a.Aggregate(ctx, userID, d)
		if err != nil {
			return nil, err
		}
		out = append(out, agg)
	}
	return out, nil
}
