package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"healthtrack/models"
	"healthtrack/utils"

	"gorm.io/gorm"
)

type UserService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewUserService(db *gorm.DB, jwtSecret string) *UserService {
	return &UserService{db: db, jwtSecret: jwtSecret}
}

// Register creates the user together with a default profile.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < 6 {
		return nil, fmt.Errorf("%w: username and a password of at least 6 characters are required", ErrInvalidInput)
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username: username,
		Email:    strings.TrimSpace(email),
		Password: hashed,
		Profile:  models.NewDefaultProfile(0),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Authenticate returns a signed token for valid credentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (string, *models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}
	if !utils.CheckPassword(user.Password, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Username, s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, &user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Profile").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists reports whether the account is still present.
func (s *UserService) Exists(ctx context.Context, userID uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return count > 0, nil
}

// Profile returns the stored profile, creating the default one for users
// that predate profiles. Unknown users get ErrNotFound.
func (s *UserService) Profile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	ok, err := s.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	var p models.UserProfile
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Attrs(models.NewDefaultProfile(userID)).
		FirstOrCreate(&p).Error
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &p, nil
}

type ProfileView struct {
	models.UserProfile
	Username    string   `json:"username"`
	Email       string   `json:"email,omitempty"`
	BMI         *float64 `json:"bmi"`
	BMICategory string   `json:"bmi_category,omitempty"`
}

func (s *UserService) ProfileView(ctx context.Context, userID uint) (*ProfileView, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	v := &ProfileView{UserProfile: *p, Username: user.Username, Email: user.Email}
	if bmi, err := utils.CalculateBMI(p.HeightCm, p.WeightKg); err == nil {
		rounded := math.Round(bmi*10) / 10
		v.BMI = &rounded
		v.BMICategory = utils.BMICategory(bmi)
	}
	return v, nil
}

type ProfileInput struct {
	Email              *string  `json:"email"`
	Age                *int     `json:"age"`
	Gender             *string  `json:"gender"`
	HeightCm           *float64 `json:"height_cm"`
	WeightKg           *float64 `json:"weight_kg"`
	ActivityLevel      *string  `json:"activity_level"`
	HealthGoals        []string `json:"health_goals"`
	DietaryPreferences []string `json:"dietary_preferences"`
	CalorieTarget      *int     `json:"calorie_target"`
}

// UpdateProfile applies only the fields present in the input.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) (*ProfileView, error) {
	p, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Age != nil {
		if *in.Age < 0 || *in.Age > 130 {
			return nil, fmt.Errorf("%w: age out of range", ErrInvalidInput)
		}
		p.Age = *in.Age
	}
	if in.Gender != nil {
		p.Gender = strings.TrimSpace(*in.Gender)
	}
	if in.HeightCm != nil {
		if *in.HeightCm < 0 {
			return nil, fmt.Errorf("%w: height_cm must not be negative", ErrInvalidInput)
		}
		p.HeightCm = *in.HeightCm
	}
	if in.WeightKg != nil {
		if *in.WeightKg < 0 {
			return nil, fmt.Errorf("%w: weight_kg must not be negative", ErrInvalidInput)
		}
		p.WeightKg = *in.WeightKg
	}
	if in.ActivityLevel != nil {
		if !models.IsActivityLevel(*in.ActivityLevel) {
			return nil, fmt.Errorf("%w: unknown activity_level %q", ErrInvalidInput, *in.ActivityLevel)
		}
		p.ActivityLevel = *in.ActivityLevel
	}
	if in.HealthGoals != nil {
		p.HealthGoals = models.JoinTags(in.HealthGoals)
	}
	if in.DietaryPreferences != nil {
		p.DietaryPreferences = models.JoinTags(in.DietaryPreferences)
	}
	if in.CalorieTarget != nil {
		if *in.CalorieTarget <= 0 {
			return nil, fmt.Errorf("%w: calorie_target must be positive", ErrInvalidInput)
		}
		p.CalorieTarget = *in.CalorieTarget
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(p).Error; err != nil {
			return err
		}
		if in.Email != nil {
			return tx.Model(&models.User{}).Where("id = ?", userID).Update("email", strings.TrimSpace(*in.Email)).Error
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	return s.ProfileView(ctx, userID)
}

// DeleteUser removes the account and every row it owns.
func (s *UserService) DeleteUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := []interface{}{
			&models.MealLog{},
			&models.ExerciseLog{},
			&models.WaterLog{},
			&models.SleepLog{},
			&models.WeightLog{},
			&models.InsightsSnapshot{},
			&models.UserDevice{},
			&models.UserProfile{},
		}
		for _, m := range owned {
			if err := tx.Unscoped().Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return fmt.Errorf("delete owned rows: %w", err)
			}
		}
		res := tx.Unscoped().Delete(&models.User{}, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// UserIDs lists every account, used by the scheduled jobs.
func (s *UserService) UserIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).Model(&models.User{}).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}
