package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"healthtrack/models"
)

var (
	errNoJSON       = errors.New("no JSON object in response")
	errMissingField = errors.New("required field missing")
	errOutOfRange   = errors.New("value out of range")
)

// maxMealCalories bounds a single meal or planned day.
const maxMealCalories = 20000

func checkCalories(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > maxMealCalories {
		return fmt.Errorf("%w: calories %v", errOutOfRange, v)
	}
	return nil
}

func checkAmounts(fields map[string]float64) error {
	for name, v := range fields {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return fmt.Errorf("%w: %s %v", errOutOfRange, name, v)
		}
	}
	return nil
}

// extractJSON returns the span from the first '{' to the last '}' after
// stripping markdown code fences.
func extractJSON(text string) (string, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", errNoJSON
	}
	return s[start : end+1], nil
}

func decodeJSON(text string, v any) error {
	raw, err := extractJSON(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

type rawNutrition struct {
	Calories              *float64 `json:"calories"`
	ProteinG              *float64 `json:"protein_g"`
	CarbsG                *float64 `json:"carbs_g"`
	FatG                  *float64 `json:"fat_g"`
	FiberG                float64  `json:"fiber_g"`
	SodiumMg              float64  `json:"sodium_mg"`
	HealthScore           *float64 `json:"health_score"`
	MealCategory          string   `json:"meal_category"`
	NutritionHighlights   []string `json:"nutrition_highlights"`
	PotentialImprovements []string `json:"potential_improvements"`
}

func parseNutritionInfo(text string) (models.NutritionInfo, error) {
	var r rawNutrition
	if err := decodeJSON(text, &r); err != nil {
		return models.NutritionInfo{}, err
	}
	if r.Calories == nil || r.ProteinG == nil || r.CarbsG == nil || r.FatG == nil {
		return models.NutritionInfo{}, fmt.Errorf("%w: calories, protein_g, carbs_g and fat_g are required", errMissingField)
	}
	if err := checkCalories(*r.Calories); err != nil {
		return models.NutritionInfo{}, err
	}
	err := checkAmounts(map[string]float64{
		"protein_g": *r.ProteinG,
		"carbs_g":   *r.CarbsG,
		"fat_g":     *r.FatG,
		"fiber_g":   r.FiberG,
		"sodium_mg": r.SodiumMg,
	})
	if err != nil {
		return models.NutritionInfo{}, err
	}

	score := 5
	if r.HealthScore != nil {
		score = clampInt(int(math.Round(*r.HealthScore)), 1, 10)
	}
	category := strings.ToLower(strings.TrimSpace(r.MealCategory))
	if !models.IsMealCategory(category) {
		category = models.CategoryMeal
	}

	return models.NutritionInfo{
		Calories:              int(math.Round(*r.Calories)),
		ProteinG:              *r.ProteinG,
		CarbsG:                *r.CarbsG,
		FatG:                  *r.FatG,
		FiberG:                r.FiberG,
		SodiumMg:              r.SodiumMg,
		HealthScore:           score,
		MealCategory:          category,
		NutritionHighlights:   nonNil(r.NutritionHighlights),
		PotentialImprovements: nonNil(r.PotentialImprovements),
	}, nil
}

func parseMealPlan(text string) (models.MealPlan, error) {
	var p models.MealPlan
	if err := decodeJSON(text, &p); err != nil {
		return models.MealPlan{}, err
	}
	if len(p.DailyPlans) == 0 {
		return models.MealPlan{}, fmt.Errorf("%w: daily_plans", errMissingField)
	}
	for _, d := range p.DailyPlans {
		if err := checkCalories(float64(d.TotalCalories)); err != nil {
			return models.MealPlan{}, fmt.Errorf("day %d: %w", d.Day, err)
		}
	}
	if p.TotalDays <= 0 {
		p.TotalDays = len(p.DailyPlans)
	}
	if p.AvgCaloriesPerDay <= 0 {
		sum := 0
		for _, d := range p.DailyPlans {
			sum += d.TotalCalories
		}
		p.AvgCaloriesPerDay = sum / len(p.DailyPlans)
	}
	for i := range p.DailyPlans {
		p.DailyPlans[i].Meals.Snacks = nonNil(p.DailyPlans[i].Meals.Snacks)
	}
	p.NutritionHighlights = nonNil(p.NutritionHighlights)
	p.ShoppingList = nonNil(p.ShoppingList)
	return p, nil
}

type rawInsights struct {
	OverallScore        *float64                `json:"overall_score"`
	Strengths           []string                `json:"strengths"`
	AreasForImprovement []string                `json:"areas_for_improvement"`
	Recommendations     models.Recommendations  `json:"recommendations"`
	NutrientAnalysis    models.NutrientAnalysis `json:"nutrient_analysis"`
}

func parseInsights(text string) (models.Insights, error) {
	var r rawInsights
	if err := decodeJSON(text, &r); err != nil {
		return models.Insights{}, err
	}
	if r.OverallScore == nil {
		return models.Insights{}, fmt.Errorf("%w: overall_score", errMissingField)
	}
	rec := r.Recommendations
	na := r.NutrientAnalysis
	return models.Insights{
		OverallScore:        clampInt(int(math.Round(*r.OverallScore)), 1, 10),
		Strengths:           nonNil(r.Strengths),
		AreasForImprovement: nonNil(r.AreasForImprovement),
		Recommendations: models.Recommendations{
			Immediate:       nonNil(rec.Immediate),
			LongTerm:        nonNil(rec.LongTerm),
			MealSuggestions: nonNil(rec.MealSuggestions),
		},
		NutrientAnalysis: models.NutrientAnalysis{
			Adequate:  nonNil(na.Adequate),
			Deficient: nonNil(na.Deficient),
			Excessive: nonNil(na.Excessive),
		},
	}, nil
}

func parseImprovements(text string) (models.Improvements, error) {
	var im models.Improvements
	if err := decodeJSON(text, &im); err != nil {
		return models.Improvements{}, err
	}
	if strings.TrimSpace(im.ImprovedMeal) == "" {
		return models.Improvements{}, fmt.Errorf("%w: improved_meal", errMissingField)
	}
	im.ChangesMade = nonNil(im.ChangesMade)
	im.NutritionalImprovements = nonNil(im.NutritionalImprovements)
	im.CookingTips = nonNil(im.CookingTips)
	im.HealthBenefits = nonNil(im.HealthBenefits)
	if im.Substitutions == nil {
		im.Substitutions = []models.Substitution{}
	}
	return im, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
