package controllers

import (
	"net/http"
	"strings"

	"healthtrack/services"

	"github.com/gin-gonic/gin"
)

// AIController exposes the analyzer directly. Every endpoint answers 200
// with a well-formed body whether or not the model is reachable.
type AIController struct {
	Analyzer *services.NutritionAnalyzer
	Users    *services.UserService
	insights *services.InsightsService
}

func NewAIController(analyzer *services.NutritionAnalyzer, users *services.UserService, insights *services.InsightsService) *AIController {
	return &AIController{Analyzer: analyzer, Users: users, insights: insights}
}

type analyzeMealInput struct {
	Description string `json:"description" binding:"required"`
	PortionSize string `json:"portion_size"`
}

func (ac *AIController) AnalyzeMeal(c *gin.Context) {
	if _, ok := requireUser(c); !ok {
		return
	}
	var in analyzeMealInput
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
		return
	}
	info := ac.Analyzer.AnalyzeMeal(c.Request.Context(), in.Description, strings.ToLower(in.PortionSize))
	c.JSON(http.StatusOK, info)
}

type mealPlanInput struct {
	Preferences   []string `json:"preferences"`
	CalorieTarget int      `json:"calorie_target"`
	Days          int      `json:"days"`
}

func (ac *AIController) MealPlan(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var in mealPlanInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	profile, err := ac.Users.Profile(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	plan := ac.Analyzer.GenerateMealPlan(c.Request.Context(), *profile, in.Preferences, in.CalorieTarget, in.Days)
	c.JSON(http.StatusOK, plan)
}

type improveMealInput struct {
	Description string `json:"description" binding:"required"`
}

func (ac *AIController) ImproveMeal(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var in improveMealInput
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
		return
	}
	profile, err := ac.Users.Profile(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	im := ac.Analyzer.SuggestMealImprovements(c.Request.Context(), in.Description, profile.Goals())
	c.JSON(http.StatusOK, im)
}

// Insights analyzes the week ending at ?end= (default today).
func (ac *AIController) Insights(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	res, err := ac.insights.Weekly(c.Request.Context(), uid, c.Query("end"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ac *AIController) InsightsHistory(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	rows, err := ac.insights.History(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (ac *AIController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ai_available": ac.Analyzer.Available()})
}
