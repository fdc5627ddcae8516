package utils

import "errors"

var ErrImplausibleBody = errors.New("height or weight outside plausible range")

const (
	minHeightCm = 50
	maxHeightCm = 250
	minWeightKg = 10
	maxWeightKg = 400
)

// CalculateBMI expects height in centimeters and weight in kilograms. Profiles
// that were never filled in (zero values) report ErrImplausibleBody.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm < minHeightCm || heightCm > maxHeightCm || weightKg < minWeightKg || weightKg > maxWeightKg {
		return 0, ErrImplausibleBody
	}
	m := heightCm / 100
	return weightKg / (m * m), nil
}

// BMICategory uses the WHO adult bands.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	case bmi < 35:
		return "Obesity class I"
	case bmi < 40:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}
