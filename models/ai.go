package models

// The types in this file are the JSON contract shared with the frontend and
// with the text-generation prompts. Field names must not change.

type NutritionInfo struct {
	Calories              int      `json:"calories"`
	ProteinG              float64  `json:"protein_g"`
	CarbsG                float64  `json:"carbs_g"`
	FatG                  float64  `json:"fat_g"`
	FiberG                float64  `json:"fiber_g"`
	SodiumMg              float64  `json:"sodium_mg"`
	HealthScore           int      `json:"health_score"`
	MealCategory          string   `json:"meal_category"`
	NutritionHighlights   []string `json:"nutrition_highlights"`
	PotentialImprovements []string `json:"potential_improvements"`
}

type MealPlan struct {
	TotalDays           int         `json:"total_days"`
	AvgCaloriesPerDay   int         `json:"avg_calories_per_day"`
	NutritionHighlights []string    `json:"nutrition_highlights"`
	ShoppingList        []string    `json:"shopping_list"`
	DailyPlans          []DailyPlan `json:"daily_plans"`
}

type DailyPlan struct {
	Day           int      `json:"day"`
	TotalCalories int      `json:"total_calories"`
	Meals         DayMeals `json:"meals"`
}

type DayMeals struct {
	Breakfast PlannedMeal `json:"breakfast"`
	Lunch     PlannedMeal `json:"lunch"`
	Dinner    PlannedMeal `json:"dinner"`
	Snacks    []string    `json:"snacks"`
}

type PlannedMeal struct {
	Name     string `json:"name"`
	Calories int    `json:"calories"`
}

type Insights struct {
	OverallScore        int              `json:"overall_score"`
	Strengths           []string         `json:"strengths"`
	AreasForImprovement []string         `json:"areas_for_improvement"`
	Recommendations     Recommendations  `json:"recommendations"`
	NutrientAnalysis    NutrientAnalysis `json:"nutrient_analysis"`
}

type Recommendations struct {
	Immediate       []string `json:"immediate"`
	LongTerm        []string `json:"long_term"`
	MealSuggestions []string `json:"meal_suggestions"`
}

type NutrientAnalysis struct {
	Adequate  []string `json:"adequate"`
	Deficient []string `json:"deficient"`
	Excessive []string `json:"excessive"`
}

type Improvements struct {
	ImprovedMeal            string         `json:"improved_meal"`
	ChangesMade             []string       `json:"changes_made"`
	NutritionalImprovements []string       `json:"nutritional_improvements"`
	Substitutions           []Substitution `json:"substitutions"`
	CookingTips             []string       `json:"cooking_tips"`
	HealthBenefits          []string       `json:"health_benefits"`
}

type Substitution struct {
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
	Reason      string `json:"reason"`
}
