package services

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidDay         = errors.New("invalid date, expected YYYY-MM-DD")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrUnavailable        = errors.New("service not configured")
	ErrNoFoodRecognized   = errors.New("no food recognized in photo")
)
