package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"healthtrack/models"
)

func mealAnalysisPrompt(description, portionSize string) string {
	return fmt.Sprintf(`You are a nutritionist. Estimate the nutrition of this meal.

Meal: %s
Portion size: %s

Reply with only a JSON object in this shape:
{
  "calories": <integer>,
  "protein_g": <number>,
  "carbs_g": <number>,
  "fat_g": <number>,
  "fiber_g": <number>,
  "sodium_mg": <number>,
  "health_score": <integer 1-10>,
  "meal_category": "breakfast|lunch|dinner|snack",
  "nutrition_highlights": ["..."],
  "potential_improvements": ["..."]
}
Use realistic values for the given portion.`, description, portionSize)
}

func mealPlanPrompt(p models.UserProfile, preferences []string, calorieTarget, days int) string {
	if len(preferences) == 0 {
		preferences = p.Preferences()
	}
	return fmt.Sprintf(`You are a dietitian. Build a %d-day meal plan.

Profile: age %d, gender %s, height %.0f cm, weight %.1f kg, activity level %s
Health goals: %s
Dietary preferences: %s
Daily calorie target: %d

Reply with only a JSON object in this shape:
{
  "total_days": %d,
  "avg_calories_per_day": <integer>,
  "nutrition_highlights": ["..."],
  "shopping_list": ["..."],
  "daily_plans": [
    {
      "day": 1,
      "total_calories": <integer>,
      "meals": {
        "breakfast": {"name": "...", "calories": <integer>},
        "lunch": {"name": "...", "calories": <integer>},
        "dinner": {"name": "...", "calories": <integer>},
        "snacks": ["..."]
      }
    }
  ]
}`,
		days, p.Age, orNone(p.Gender), p.HeightCm, p.WeightKg, orNone(p.ActivityLevel),
		tagList(p.Goals()), tagList(preferences), calorieTarget, days)
}

func insightsPrompt(history map[string]models.DailyMetrics, goals []string) string {
	// map keys are marshalled in sorted order, so the prompt is stable
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		data = []byte("{}")
	}
	return fmt.Sprintf(`You are a health coach. Review this week of tracking data.

Daily data:
%s

Health goals: %s

Reply with only a JSON object in this shape:
{
  "overall_score": <integer 1-10>,
  "strengths": ["..."],
  "areas_for_improvement": ["..."],
  "recommendations": {
    "immediate": ["..."],
    "long_term": ["..."],
    "meal_suggestions": ["..."]
  },
  "nutrient_analysis": {
    "adequate": ["..."],
    "deficient": ["..."],
    "excessive": ["..."]
  }
}`, data, tagList(goals))
}

func improvementsPrompt(description string, goals []string) string {
	return fmt.Sprintf(`You are a nutritionist. Suggest a healthier version of this meal.

Meal: %s
Health goals: %s

Reply with only a JSON object in this shape:
{
  "improved_meal": "...",
  "changes_made": ["..."],
  "nutritional_improvements": ["..."],
  "substitutions": [{"original": "...", "replacement": "...", "reason": "..."}],
  "cooking_tips": ["..."],
  "health_benefits": ["..."]
}`, description, tagList(goals))
}

func tagList(tags []string) string {
	if len(tags) == 0 {
		return "none specified"
	}
	return strings.Join(tags, ", ")
}

func orNone(s string) string {
	if s == "" {
		return "unspecified"
	}
	return s
}
