package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

const fallbackPredictedCalories = 2000

// RegressionModel is an externally trained model over
// [weight, sleep_hours, exercise_calories, previous_calories].
type RegressionModel interface {
	Predict(features [4]float64) float64
}

// LinearModel is a linear regression exported as plain coefficients.
type LinearModel struct {
	Intercept    float64    `json:"intercept"`
	Coefficients [4]float64 `json:"coefficients"`
}

func (m LinearModel) Predict(x [4]float64) float64 {
	y := m.Intercept
	for i, c := range m.Coefficients {
		y += c * x[i]
	}
	return y
}

func DecodeLinearModel(r io.Reader) (*LinearModel, error) {
	var raw struct {
		Intercept    *float64  `json:"intercept"`
		Coefficients []float64 `json:"coefficients"`
	}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	if raw.Intercept == nil || len(raw.Coefficients) != 4 {
		return nil, errors.New("model needs an intercept and exactly 4 coefficients")
	}
	m := &LinearModel{Intercept: *raw.Intercept}
	copy(m.Coefficients[:], raw.Coefficients)
	return m, nil
}

func LoadLinearModelFile(path string) (*LinearModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeLinearModel(f)
}

type ObjectGetter interface {
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
}

func LoadLinearModelS3(ctx context.Context, store ObjectGetter, bucket, key string) (*LinearModel, error) {
	b, err := store.GetObject(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	return DecodeLinearModel(bytes.NewReader(b))
}

// CaloriePredictor answers with a fixed estimate when no model is loaded.
type CaloriePredictor struct {
	model RegressionModel
}

// NewCaloriePredictor accepts a nil model.
func NewCaloriePredictor(model RegressionModel) *CaloriePredictor {
	return &CaloriePredictor{model: model}
}

func (p *CaloriePredictor) HasModel() bool { return p != nil && p.model != nil }

func (p *CaloriePredictor) Predict(weight, sleepHours, exerciseCalories, previousCalories float64) int {
	if !p.HasModel() {
		return fallbackPredictedCalories
	}
	return int(p.model.Predict([4]float64{weight, sleepHours, exerciseCalories, previousCalories}))
}

// LoadCalorieModel tries S3 first when a bucket is configured, then the
// local file. A missing model is logged and left nil.
func LoadCalorieModel(ctx context.Context, store ObjectGetter, bucket, key, path string, log *zap.Logger) RegressionModel {
	if store != nil && bucket != "" && key != "" {
		m, err := LoadLinearModelS3(ctx, store, bucket, key)
		if err == nil {
			log.Info("calorie model loaded", zap.String("source", "s3"), zap.String("key", key))
			return m
		}
		log.Warn("calorie model s3 load failed", zap.Error(err))
	}
	if path != "" {
		m, err := LoadLinearModelFile(path)
		if err == nil {
			log.Info("calorie model loaded", zap.String("source", "file"), zap.String("path", path))
			return m
		}
		log.Warn("calorie model not loaded, predictions use the fixed estimate", zap.Error(err))
	}
	return nil
}
