package services

import (
	"context"
	"fmt"
	"strings"

	"healthtrack/models"
	"healthtrack/repository"
	"healthtrack/utils"
)

// DayPublisher is told about every write so open dashboards can refresh.
type DayPublisher interface {
	PublishDay(ctx context.Context, userID uint, day string)
}

type HealthLogService struct {
	repo      *repository.HealthLogRepository
	analyzer  *NutritionAnalyzer
	publisher DayPublisher
}

func NewHealthLogService(repo *repository.HealthLogRepository, analyzer *NutritionAnalyzer) *HealthLogService {
	return &HealthLogService{repo: repo, analyzer: analyzer}
}

// SetPublisher wires the refresh hook after construction; the dashboard
// service depends on this service's repository.
func (s *HealthLogService) SetPublisher(p DayPublisher) { s.publisher = p }

func (s *HealthLogService) changed(ctx context.Context, userID uint, day string) {
	if s.publisher != nil {
		s.publisher.PublishDay(ctx, userID, day)
	}
}

// resolveDay defaults an empty day to today.
func resolveDay(day string) (string, error) {
	day = strings.TrimSpace(day)
	if day == "" {
		return utils.Today(), nil
	}
	if _, err := utils.ParseDay(day); err != nil {
		return "", ErrInvalidDay
	}
	return day, nil
}

// ---------- Meals ----------

type MealInput struct {
	Day         string `json:"date"`
	Description string `json:"description" binding:"required"`
	PortionSize string `json:"portion_size"`
	Category    string `json:"category"`
	Calories    *int   `json:"calories"` // manual override of the analyzed value
}

// LogMeal analyzes the description and stores the resulting snapshot.
func (s *HealthLogService) LogMeal(ctx context.Context, userID uint, in MealInput) (*models.MealLog, error) {
	day, err := resolveDay(in.Day)
	if err != nil {
		return nil, err
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return nil, fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	portion := strings.ToLower(strings.TrimSpace(in.PortionSize))
	if portion == "" {
		portion = models.PortionNormal
	}
	if !models.IsPortionSize(portion) {
		return nil, fmt.Errorf("%w: portion_size must be small, normal or large", ErrInvalidInput)
	}
	if in.Calories != nil && *in.Calories < 0 {
		return nil, fmt.Errorf("%w: calories must not be negative", ErrInvalidInput)
	}

	info, aiAnalyzed := s.analyzer.AnalyzeMealWithSource(ctx, desc, portion)

	meal := models.MealLog{
		UserID:      userID,
		Day:         day,
		Description: desc,
		PortionSize: portion,
		Calories:    info.Calories,
		ProteinG:    info.ProteinG,
		CarbsG:      info.CarbsG,
		FatG:        info.FatG,
		FiberG:      info.FiberG,
		SodiumMg:    info.SodiumMg,
		Category:    info.MealCategory,
		HealthScore: info.HealthScore,
		AIAnalyzed:  aiAnalyzed,
	}
	if c := strings.ToLower(in.Category); models.IsMealCategory(c) {
		meal.Category = c
	}
	if in.Calories != nil {
		meal.Calories = *in.Calories
	}

	if err := s.repo.CreateMeal(ctx, &meal); err != nil {
		return nil, fmt.Errorf("save meal: %w", err)
	}
	s.changed(ctx, userID, day)
	return &meal, nil
}

func (s *HealthLogService) ListMeals(ctx context.Context, userID uint, day string) ([]models.MealLog, error) {
	day, err := resolveDay(day)
	if err != nil {
		return nil, err
	}
	return s.repo.MealsForDay(ctx, userID, day)
}

func (s *HealthLogService) DeleteMeal(ctx context.Context, userID, id uint) error {
	day, ok, err := s.repo.DeleteMeal(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	s.changed(ctx, userID, day)
	return nil
}

// ---------- Exercise ----------

type ExerciseInput struct {
	Day             string `json:"date"`
	Name            string `json:"name" binding:"required"`
	CaloriesBurned  int    `json:"calories_burned"`
	DurationMinutes int    `json:"duration_minutes"`
	Type            string `json:"type"`
}

func (s *HealthLogService) LogExercise(ctx context.Context, userID uint, in ExerciseInput) (*models.ExerciseLog, error) {
	day, err := resolveDay(in.Day)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.CaloriesBurned < 0 || in.DurationMinutes < 0 {
		return nil, fmt.Errorf("%w: calories and duration must not be negative", ErrInvalidInput)
	}

	e := models.ExerciseLog{
		UserID:          userID,
		Day:             day,
		Name:            strings.TrimSpace(in.Name),
		CaloriesBurned:  in.CaloriesBurned,
		DurationMinutes: in.DurationMinutes,
		Type:            in.Type,
	}
	if err := s.repo.CreateExercise(ctx, &e); err != nil {
		return nil, fmt.Errorf("save exercise: %w", err)
	}
	s.changed(ctx, userID, day)
	return &e, nil
}

func (s *HealthLogService) ListExercise(ctx context.Context, userID uint, day string) ([]models.ExerciseLog, error) {
	day, err := resolveDay(day)
	if err != nil {
		return nil, err
	}
	return s.repo.ExercisesForDay(ctx, userID, day)
}

func (s *HealthLogService) DeleteExercise(ctx context.Context, userID, id uint) error {
	day, ok, err := s.repo.DeleteExercise(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete exercise: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	s.changed(ctx, userID, day)
	return nil
}

// ---------- Water ----------

func (s *HealthLogService) LogWater(ctx context.Context, userID uint, day string, amountML float64) (*models.WaterLog, error) {
	day, err := resolveDay(day)
	if err != nil {
		return nil, err
	}
	if amountML <= 0 {
		return nil, fmt.Errorf("%w: amount_ml must be positive", ErrInvalidInput)
	}
	w := models.WaterLog{UserID: userID, Day: day, AmountML: amountML}
	if err := s.repo.CreateWater(ctx, &w); err != nil {
		return nil, fmt.Errorf("save water: %w", err)
	}
	s.changed(ctx, userID, day)
	return &w, nil
}

func (s *HealthLogService) ListWater(ctx context.Context, userID uint, day string) ([]models.WaterLog, float64, error) {
	day, err := resolveDay(day)
	if err != nil {
		return nil, 0, err
	}
	rows, err := s.repo.WaterForDay(ctx, userID, day)
	if err != nil {
		return nil, 0, err
	}
	var total float64
	for _, w := range rows {
		total += w.AmountML
	}
	return rows, total, nil
}

func (s *HealthLogService) ClearWater(ctx context.Context, userID uint, day string) (int64, error) {
	day, err := resolveDay(day)
	if err != nil {
		return 0, err
	}
	n, err := s.repo.ClearWater(ctx, userID, day)
	if err != nil {
		return 0, fmt.Errorf("clear water: %w", err)
	}
	s.changed(ctx, userID, day)
	return n, nil
}

// ---------- Sleep ----------

type SleepInput struct {
	Day     string  `json:"date"`
	Hours   float64 `json:"hours"`
	Quality int     `json:"quality"` // 1-10, 0 means unset
}

// LogSleep replaces any earlier entry for the same day.
func (s *HealthLogService) LogSleep(ctx context.Context, userID uint, in SleepInput) (*models.SleepLog, error) {
	day, err := resolveDay(in.Day)
	if err != nil {
		return nil, err
	}
	if in.Hours < 0 || in.Hours > 24 {
		return nil, fmt.Errorf("%w: hours must be between 0 and 24", ErrInvalidInput)
	}
	if in.Quality < 0 || in.Quality > 10 {
		return nil, fmt.Errorf("%w: quality must be between 1 and 10", ErrInvalidInput)
	}
	quality := in.Quality
	if quality == 0 {
		quality = models.DefaultSleepQuality
	}

	log, err := s.repo.UpsertSleep(ctx, userID, day, in.Hours, quality)
	if err != nil {
		return nil, fmt.Errorf("save sleep: %w", err)
	}
	s.changed(ctx, userID, day)
	return log, nil
}

// ---------- Weight ----------

func (s *HealthLogService) LogWeight(ctx context.Context, userID uint, day string, weight float64) (*models.WeightLog, error) {
	day, err := resolveDay(day)
	if err != nil {
		return nil, err
	}
	if weight <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", ErrInvalidInput)
	}
	w := models.WeightLog{UserID: userID, Day: day, Weight: weight}
	if err := s.repo.CreateWeight(ctx, &w); err != nil {
		return nil, fmt.Errorf("save weight: %w", err)
	}
	s.changed(ctx, userID, day)
	return &w, nil
}

// CurrentWeight is the latest weight at or before day, nil when none.
func (s *HealthLogService) CurrentWeight(ctx context.Context, userID uint, day string) (*models.WeightLog, error) {
	day, err := resolveDay(day)
	if err != nil {
		return nil, err
	}
	return s.repo.LatestWeightOnOrBefore(ctx, userID, day)
}

func (s *HealthLogService) RecentWeights(ctx context.Context, userID uint, n int) ([]models.WeightLog, error) {
	return s.repo.RecentWeights(ctx, userID, n)
}
