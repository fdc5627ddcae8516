package repository

import (
	"context"
	"errors"

	"healthtrack/models"

	"gorm.io/gorm"
)

// HealthLogRepository is the gorm store for the per-day log tables.
type HealthLogRepository struct{ db *gorm.DB }

func NewHealthLogRepository(db *gorm.DB) *HealthLogRepository {
	return &HealthLogRepository{db: db}
}

// ---------- Meals ----------

func (r *HealthLogRepository) CreateMeal(ctx context.Context, m *models.MealLog) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *HealthLogRepository) MealsForDay(ctx context.Context, userID uint, day string) ([]models.MealLog, error) {
	var meals []models.MealLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		Order("id ASC").
		Find(&meals).Error
	return meals, err
}

// DeleteMeal returns the day the meal was logged on. It reports false when
// the meal does not exist or is not owned by userID.
func (r *HealthLogRepository) DeleteMeal(ctx context.Context, userID, id uint) (string, bool, error) {
	return deleteOwned(ctx, r.db, &models.MealLog{}, userID, id)
}

// ---------- Exercise ----------

func (r *HealthLogRepository) CreateExercise(ctx context.Context, e *models.ExerciseLog) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *HealthLogRepository) ExercisesForDay(ctx context.Context, userID uint, day string) ([]models.ExerciseLog, error) {
	var rows []models.ExerciseLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *HealthLogRepository) DeleteExercise(ctx context.Context, userID, id uint) (string, bool, error) {
	return deleteOwned(ctx, r.db, &models.ExerciseLog{}, userID, id)
}

// ---------- Water ----------

func (r *HealthLogRepository) CreateWater(ctx context.Context, w *models.WaterLog) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *HealthLogRepository) WaterForDay(ctx context.Context, userID uint, day string) ([]models.WaterLog, error) {
	var rows []models.WaterLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *HealthLogRepository) WaterTotalForDay(ctx context.Context, userID uint, day string) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.WaterLog{}).
		Where("user_id = ? AND day = ?", userID, day).
		Select("COALESCE(SUM(amount_ml), 0)").
		Scan(&total).Error
	return total, err
}

// ClearWater removes every water entry of the day and returns how many
// were removed.
func (r *HealthLogRepository) ClearWater(ctx context.Context, userID uint, day string) (int64, error) {
	res := r.db.WithContext(ctx).
		Unscoped().
		Where("user_id = ? AND day = ?", userID, day).
		Delete(&models.WaterLog{})
	return res.RowsAffected, res.Error
}

// ---------- Sleep ----------

// UpsertSleep keeps a single row per (user, day); the latest call wins.
func (r *HealthLogRepository) UpsertSleep(ctx context.Context, userID uint, day string, hours float64, quality int) (*models.SleepLog, error) {
	log := models.SleepLog{UserID: userID, Day: day}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		Assign(map[string]interface{}{"hours": hours, "quality": quality}).
		FirstOrCreate(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *HealthLogRepository) SleepForDay(ctx context.Context, userID uint, day string) (*models.SleepLog, error) {
	var log models.SleepLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// RecentSleep returns the latest n entries, newest first.
func (r *HealthLogRepository) RecentSleep(ctx context.Context, userID uint, n int) ([]models.SleepLog, error) {
	var rows []models.SleepLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day DESC").
		Limit(n).
		Find(&rows).Error
	return rows, err
}

// ---------- Weight ----------

func (r *HealthLogRepository) CreateWeight(ctx context.Context, w *models.WeightLog) error {
	return r.db.WithContext(ctx).Create(w).Error
}

// LatestWeightOnOrBefore orders by (day, id) so the last entry of a day
// wins over earlier ones.
func (r *HealthLogRepository) LatestWeightOnOrBefore(ctx context.Context, userID uint, day string) (*models.WeightLog, error) {
	var w models.WeightLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day <= ?", userID, day).
		Order("day DESC, id DESC").
		First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// LatestWeightOnDay only looks at the given day.
func (r *HealthLogRepository) LatestWeightOnDay(ctx context.Context, userID uint, day string) (*models.WeightLog, error) {
	var w models.WeightLog
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day = ?", userID, day).
		Order("id DESC").
		First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *HealthLogRepository) RecentWeights(ctx context.Context, userID uint, n int) ([]models.WeightLog, error) {
	var rows []models.WeightLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("day DESC, id DESC").
		Limit(n).
		Find(&rows).Error
	return rows, err
}

func deleteOwned(ctx context.Context, db *gorm.DB, model interface{}, userID, id uint) (string, bool, error) {
	var day string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var days []string
		if err := tx.Model(model).Where("id = ? AND user_id = ?", id, userID).Pluck("day", &days).Error; err != nil {
			return err
		}
		if len(days) == 0 {
			return nil
		}
		res := tx.Unscoped().Where("id = ? AND user_id = ?", id, userID).Delete(model)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			day = days[0]
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	return day, day != "", nil
}
