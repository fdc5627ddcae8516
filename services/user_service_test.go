package services

import (
	"context"
	"testing"

	"healthtrack/models"
	"healthtrack/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestRegisterAndAuthenticate(t *testing.T) {
	users := NewUserService(newTestDB(t), testSecret)
	ctx := context.Background()

	u, err := users.Register(ctx, "alice", "alice@example.com", "s3cret!")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, "s3cret!", u.Password)

	p, err := users.Profile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCalorieTarget, p.CalorieTarget)
	assert.Equal(t, models.DefaultActivityLevel, p.ActivityLevel)

	_, err = users.Register(ctx, "alice", "", "another1")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	token, got, err := users.Authenticate(ctx, "alice", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	id, err := utils.ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	_, _, err = users.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = users.Authenticate(ctx, "bob", "s3cret!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_Validation(t *testing.T) {
	users := NewUserService(newTestDB(t), testSecret)
	_, err := users.Register(context.Background(), " ", "", "password")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = users.Register(context.Background(), "carol", "", "123")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateProfile(t *testing.T) {
	users := NewUserService(newTestDB(t), testSecret)
	ctx := context.Background()
	u, err := users.Register(ctx, "dave", "", "password")
	require.NoError(t, err)

	height, weight, target := 180.0, 85.0, 2400
	level := "active"
	view, err := users.UpdateProfile(ctx, u.ID, ProfileInput{
		HeightCm:      &height,
		WeightKg:      &weight,
		ActivityLevel: &level,
		CalorieTarget: &target,
		HealthGoals:   []string{"build muscle", " ", "sleep better"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2400, view.CalorieTarget)
	assert.Equal(t, "build muscle,sleep better", view.HealthGoals)
	assert.Equal(t, []string{"build muscle", "sleep better"}, view.Goals())
	require.NotNil(t, view.BMI)
	assert.Equal(t, 26.2, *view.BMI)
	assert.Equal(t, "Overweight", view.BMICategory)

	bad := "couch"
	_, err = users.UpdateProfile(ctx, u.ID, ProfileInput{ActivityLevel: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
	zero := 0
	_, err = users.UpdateProfile(ctx, u.ID, ProfileInput{CalorieTarget: &zero})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteUser_RemovesOwnedRows(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db, testSecret)
	ctx := context.Background()

	u, err := users.Register(ctx, "erin", "", "password")
	require.NoError(t, err)
	other, err := users.Register(ctx, "frank", "", "password")
	require.NoError(t, err)

	for _, id := range []uint{u.ID, other.ID} {
		seed(t, db,
			&models.MealLog{UserID: id, Day: "2024-03-10", Description: "x", Calories: 100},
			&models.ExerciseLog{UserID: id, Day: "2024-03-10", Name: "walk"},
			&models.WaterLog{UserID: id, Day: "2024-03-10", AmountML: 200},
			&models.SleepLog{UserID: id, Day: "2024-03-10", Hours: 7},
			&models.WeightLog{UserID: id, Day: "2024-03-10", Weight: 70},
			&models.InsightsSnapshot{UserID: id, Day: "2024-03-10", Source: models.SourceFallback},
			&models.UserDevice{UserID: id, Platform: "android", TokenHash: "h"},
		)
	}

	require.NoError(t, users.DeleteUser(ctx, u.ID))

	for _, m := range []interface{}{
		&models.MealLog{}, &models.ExerciseLog{}, &models.WaterLog{}, &models.SleepLog{},
		&models.WeightLog{}, &models.InsightsSnapshot{}, &models.UserDevice{}, &models.UserProfile{},
	} {
		var mine, theirs int64
		require.NoError(t, db.Unscoped().Model(m).Where("user_id = ?", u.ID).Count(&mine).Error)
		require.NoError(t, db.Unscoped().Model(m).Where("user_id = ?", other.ID).Count(&theirs).Error)
		assert.Zero(t, mine, "%T", m)
		assert.EqualValues(t, 1, theirs, "%T", m)
	}

	_, err = users.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, users.DeleteUser(ctx, u.ID), ErrNotFound)

	ok, err := users.Exists(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = users.Profile(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	var profiles int64
	require.NoError(t, db.Model(&models.UserProfile{}).Where("user_id = ?", u.ID).Count(&profiles).Error)
	assert.Zero(t, profiles)

	ids, err := users.UserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{other.ID}, ids)
}
