package utils

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayRange(t *testing.T) {
	days, err := DayRange("2024-02-27", 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"}, days)

	days, err = DayRange("2024-02-27", 0)
	require.NoError(t, err)
	assert.Empty(t, days)

	_, err = DayRange("27/02/2024", 3)
	assert.Error(t, err)
}

func TestAddDays(t *testing.T) {
	d, err := AddDays("2024-01-03", -6)
	require.NoError(t, err)
	assert.Equal(t, "2023-12-28", d)

	_, err = AddDays("", 1)
	assert.Error(t, err)
}

func TestParseDataURI(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("fake-png"))

	d, err := ParseDataURI("data:image/png;base64," + payload)
	require.NoError(t, err)
	assert.Equal(t, "image/png", d.ContentType)
	assert.Equal(t, []byte("fake-png"), d.Data)
	assert.Equal(t, ".png", d.Ext())

	d, err = ParseDataURI("data:image/jpeg;base64," + payload)
	require.NoError(t, err)
	assert.Equal(t, ".jpg", d.Ext())

	for _, bad := range []string{
		"",
		payload,
		"data:text/plain;base64," + payload,
		"data:image/png," + payload,
		"data:image/png;base64,***",
		"data:image/png;base64,",
	} {
		_, err := ParseDataURI(bad)
		assert.ErrorIs(t, err, ErrInvalidDataURI, bad)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	tok, err := GenerateJWT(42, "sam", "s3cret")
	require.NoError(t, err)

	id, err := ParseJWT(tok, "s3cret")
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	_, err = ParseJWT(tok, "other")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = ParseJWT("not.a.token", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseJWT_RejectsExpiredAndMissingClaim(t *testing.T) {
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": 1,
		"exp":    time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = ParseJWT(expired, "k")
	assert.ErrorIs(t, err, ErrInvalidToken)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, err = ParseJWT(noUser, "k")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(180, 81)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, bmi, 0.001)

	_, err = CalculateBMI(0, 70)
	assert.ErrorIs(t, err, ErrImplausibleBody)
	_, err = CalculateBMI(170, 500)
	assert.ErrorIs(t, err, ErrImplausibleBody)

	assert.Equal(t, "Underweight", BMICategory(17))
	assert.Equal(t, "Normal weight", BMICategory(22.4))
	assert.Equal(t, "Obesity class II", BMICategory(36))
}
