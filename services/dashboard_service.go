package services

import (
	"context"
	"fmt"
	"math"

	"healthtrack/models"
	"healthtrack/repository"
	"healthtrack/utils"

	"go.uber.org/zap"
)

const (
	weeklyWindowDays = 7
	sleepHistorySize = 7
)

type ProfileSource interface {
	Profile(ctx context.Context, userID uint) (*models.UserProfile, error)
}

type DashboardService struct {
	repo        *repository.HealthLogRepository
	aggregator  *DailyAggregator
	suggestions *SuggestionEngine
	predictor   *CaloriePredictor
	profiles    ProfileSource
	notifier    *Notifier
	log         *zap.Logger
}

func NewDashboardService(
	repo *repository.HealthLogRepository,
	aggregator *DailyAggregator,
	suggestions *SuggestionEngine,
	predictor *CaloriePredictor,
	profiles ProfileSource,
	notifier *Notifier,
	log *zap.Logger,
) *DashboardService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DashboardService{
		repo:        repo,
		aggregator:  aggregator,
		suggestions: suggestions,
		predictor:   predictor,
		profiles:    profiles,
		notifier:    notifier,
		log:         log,
	}
}

// ---------- Day ----------

type DayView struct {
	Date              string                `json:"date"`
	CalorieTarget     int                   `json:"calorie_target"`
	Aggregate         models.DailyAggregate `json:"aggregate"`
	Progress          Progress              `json:"progress"`
	Suggestions       []models.Suggestion   `json:"suggestions"`
	PredictedCalories *int                  `json:"predicted_calories"`
	Meals             []models.MealLog      `json:"meals"`
}

func (s *DashboardService) Day(ctx context.Context, userID uint, day string) (*DayView, error) {
	day, err := resolveDay(day)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	target := profile.EffectiveCalorieTarget()

	agg, err := s.aggregator.Aggregate(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	meals, err := s.repo.MealsForDay(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("load meals: %w", err)
	}

	view := &DayView{
		Date:          day,
		CalorieTarget: target,
		Aggregate:     agg,
		Progress:      s.suggestions.Progress(agg, target),
		Suggestions:   s.suggestions.Suggest(agg, target),
		Meals:         meals,
	}
	if agg.LatestWeight != nil && *agg.LatestWeight != 0 && agg.TotalCalories != 0 {
		p := s.predictor.Predict(*agg.LatestWeight, agg.SleepHours, float64(agg.TotalExerciseCalories), float64(agg.TotalCalories))
		view.PredictedCalories = &p
	}
	return view, nil
}

// PublishDay pushes a refreshed day to the user's open sockets.
func (s *DashboardService) PublishDay(ctx context.Context, userID uint, day string) {
	if s.notifier == nil || s.notifier.hub == nil || s.notifier.hub.Connections(userID) == 0 {
		return
	}
	view, err := s.Day(ctx, userID, day)
	if err != nil {
		s.log.Warn("refresh day for realtime failed", zap.Uint("user_id", userID), zap.Error(err))
		return
	}
	s.notifier.DayUpdated(userID, view)
}

// Digest pushes the day's warnings to the user's devices.
func (s *DashboardService) Digest(ctx context.Context, userID uint, day string) error {
	view, err := s.Day(ctx, userID, day)
	if err != nil {
		return err
	}
	s.notifier.PushWarnings(ctx, userID, day, view.Suggestions)
	return nil
}

// ---------- Weekly summary ----------

type WeeklyDay struct {
	Date             string   `json:"date"`
	Calories         int      `json:"calories"`
	ExerciseCalories int      `json:"exercise_calories"`
	WaterML          float64  `json:"water_ml"`
	SleepHours       float64  `json:"sleep_hours"`
	Weight           *float64 `json:"weight"` // logged on that day only
}

type WeeklySummary struct {
	Start           string      `json:"start"`
	End             string      `json:"end"`
	Days            []WeeklyDay `json:"days"`
	AvgCalories     float64     `json:"avg_calories"`
	TotalExercise   int         `json:"total_exercise_calories"`
	AvgSleepHours   float64     `json:"avg_sleep_hours"`
	DaysWithEntries int         `json:"days_with_entries"`
}

// WeeklySummary covers the seven days ending at end, oldest first.
func (s *DashboardService) WeeklySummary(ctx context.Context, userID uint, end string) (*WeeklySummary, error) {
	end, err := resolveDay(end)
	if err != nil {
		return nil, err
	}
	start, err := utils.AddDays(end, -(weeklyWindowDays - 1))
	if err != nil {
		return nil, ErrInvalidDay
	}
	aggs, err := s.aggregator.AggregateRange(ctx, userID, start, weeklyWindowDays)
	if err != nil {
		return nil, err
	}

	out := &WeeklySummary{Start: start, End: end, Days: make([]WeeklyDay, 0, len(aggs))}
	var calSum, sleepSum float64
	for _, a := range aggs {
		d := WeeklyDay{
			Date:             a.Date,
			Calories:         a.TotalCalories,
			ExerciseCalories: a.TotalExerciseCalories,
			WaterML:          a.TotalWaterML,
			SleepHours:       a.SleepHours,
		}
		w, err := s.repo.LatestWeightOnDay(ctx, userID, a.Date)
		if err != nil {
			return nil, fmt.Errorf("load weight: %w", err)
		}
		if w != nil {
			d.Weight = &w.Weight
		}
		out.Days = append(out.Days, d)

		calSum += float64(a.TotalCalories)
		sleepSum += a.SleepHours
		out.TotalExercise += a.TotalExerciseCalories
		if a.TotalCalories > 0 || a.TotalExerciseCalories > 0 || a.TotalWaterML > 0 || a.SleepHours > 0 || w != nil {
			out.DaysWithEntries++
		}
	}
	out.AvgCalories = round1(calSum / weeklyWindowDays)
	out.AvgSleepHours = round1(sleepSum / weeklyWindowDays)
	return out, nil
}

// ---------- Sleep history ----------

type SleepHistory struct {
	Entries      []models.SleepLog `json:"entries"` // oldest first
	AverageHours float64           `json:"average_hours"`
}

func (s *DashboardService) SleepHistory(ctx context.Context, userID uint) (*SleepHistory, error) {
	rows, err := s.repo.RecentSleep(ctx, userID, sleepHistorySize)
	if err != nil {
		return nil, fmt.Errorf("load sleep: %w", err)
	}
	// newest first from the store
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	out := &SleepHistory{Entries: rows}
	if len(rows) > 0 {
		var sum float64
		for _, r := range rows {
			sum += r.Hours
		}
		out.AverageHours = round1(sum / float64(len(rows)))
	}
	if out.Entries == nil {
		out.Entries = []models.SleepLog{}
	}
	return out, nil
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
