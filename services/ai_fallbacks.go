package services

import (
	"strings"

	"healthtrack/models"
)

type calorieKeyword struct {
	keyword  string
	calories int
}

// Matched in slice order; the first hit wins even if a later keyword also
// appears in the description.
var calorieKeywords = []calorieKeyword{
	{"salad", 150},
	{"chicken", 250},
	{"rice", 200},
	{"bread", 100},
	{"pasta", 300},
	{"pizza", 400},
	{"burger", 500},
	{"sandwich", 300},
}

const defaultFallbackCalories = 250

func estimateCalories(description string) int {
	d := strings.ToLower(description)
	for _, k := range calorieKeywords {
		if strings.Contains(d, k.keyword) {
			return k.calories
		}
	}
	return defaultFallbackCalories
}

func fallbackMealAnalysis(description string) models.NutritionInfo {
	return models.NutritionInfo{
		Calories:              estimateCalories(description),
		ProteinG:              20,
		CarbsG:                30,
		FatG:                  10,
		FiberG:                5,
		SodiumMg:              500,
		HealthScore:           7,
		MealCategory:          models.CategoryMeal,
		NutritionHighlights:   []string{"Basic nutritional estimate"},
		PotentialImprovements: []string{"AI analysis unavailable - consider adding more vegetables"},
	}
}

func fallbackMealPlan(calorieTarget, days int) models.MealPlan {
	plans := make([]models.DailyPlan, 0, days)
	for day := 1; day <= days; day++ {
		plans = append(plans, models.DailyPlan{
			Day:           day,
			TotalCalories: calorieTarget,
			Meals: models.DayMeals{
				Breakfast: models.PlannedMeal{Name: "Oatmeal with fruits", Calories: calorieTarget / 4},
				Lunch:     models.PlannedMeal{Name: "Grilled chicken salad", Calories: calorieTarget / 3},
				Dinner:    models.PlannedMeal{Name: "Salmon with vegetables", Calories: calorieTarget / 3},
				Snacks:    []string{"Mixed nuts", "Greek yogurt"},
			},
		})
	}
	return models.MealPlan{
		TotalDays:           days,
		AvgCaloriesPerDay:   calorieTarget,
		NutritionHighlights: []string{"AI meal planning unavailable - using healthy template"},
		ShoppingList:        []string{"oats", "fruits", "chicken", "vegetables", "salmon", "nuts", "yogurt"},
		DailyPlans:          plans,
	}
}

func fallbackInsights() models.Insights {
	return models.Insights{
		OverallScore:        7,
		Strengths:           []string{"Maintaining consistent food logging"},
		AreasForImprovement: []string{"AI analysis unavailable - continue tracking"},
		Recommendations: models.Recommendations{
			Immediate:       []string{"Continue tracking your meals"},
			LongTerm:        []string{"Maintain balanced nutrition"},
			MealSuggestions: []string{"Focus on whole foods"},
		},
		NutrientAnalysis: models.NutrientAnalysis{
			Adequate:  []string{"basic nutrition tracking"},
			Deficient: []string{"detailed analysis unavailable"},
			Excessive: []string{"none identified"},
		},
	}
}

func fallbackImprovements(description string) models.Improvements {
	return models.Improvements{
		ImprovedMeal:            "Enhanced " + description + " with more vegetables",
		ChangesMade:             []string{"Add more vegetables", "Use whole grains", "Choose lean proteins"},
		NutritionalImprovements: []string{"Increased fiber", "Better micronutrients", "Improved protein quality"},
		Substitutions: []models.Substitution{
			{Original: "refined grains", Replacement: "whole grains", Reason: "better fiber and nutrients"},
			{Original: "fried foods", Replacement: "grilled options", Reason: "reduced unhealthy fats"},
		},
		CookingTips:    []string{"Steam vegetables to preserve nutrients", "Grill instead of frying"},
		HealthBenefits: []string{"AI suggestions unavailable - using general healthy guidelines"},
	}
}
