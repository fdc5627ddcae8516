package controllers

import (
	"net/http"

	"healthtrack/services"

	"github.com/gin-gonic/gin"
)

type HealthLogController struct {
	Logs        *services.HealthLogService
	Dashboard   *services.DashboardService
	Recognition *services.RecognitionService // nil when Rekognition is off
}

func NewHealthLogController(logs *services.HealthLogService, dash *services.DashboardService, rec *services.RecognitionService) *HealthLogController {
	return &HealthLogController{Logs: logs, Dashboard: dash, Recognition: rec}
}

// ---------- Meals ----------

func (hc *HealthLogController) LogMeal(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var in services.MealInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	meal, err := hc.Logs.LogMeal(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (hc *HealthLogController) ListMeals(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	meals, err := hc.Logs.ListMeals(c.Request.Context(), uid, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (hc *HealthLogController) DeleteMeal(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := hc.Logs.DeleteMeal(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type recognizeInput struct {
	Image       string `json:"image" binding:"required"` // data URI
	PortionSize string `json:"portion_size"`
}

// RecognizeMeal previews a meal from a photo without logging it.
func (hc *HealthLogController) RecognizeMeal(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	if hc.Recognition == nil {
		respondError(c, services.ErrUnavailable)
		return
	}
	var in recognizeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := hc.Recognition.RecognizeMeal(c.Request.Context(), uid, in.Image, in.PortionSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ---------- Exercise ----------

func (hc *HealthLogController) LogExercise(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var in services.ExerciseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := hc.Logs.LogExercise(c.Request.Context(), uid, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (hc *HealthLogController) ListExercise(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	rows, err := hc.Logs.ListExercise(c.Request.Context(), uid, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (hc *HealthLogController) DeleteExercise(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := hc.Logs.DeleteExercise(c.Request.Context(), uid, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ---------- Water ----------

type waterInput struct {
	Day      string   `json:"date"`
	AmountML *float64 `json:"amount_ml" binding:"required"`
}

func (hc *HealthLogController) LogWater(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var in waterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err := hc.Logs.LogWater(c.Request.Context(), uid, in.Day, *in.AmountML)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (hc *HealthLogController) ListWater(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	rows, total, err := hc.Logs.ListWater(c.Request.Context(), uid, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": rows, "total_ml": total})
}

func (hc *HealthLogController) ClearWater(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	n, err := hc.Logs.ClearWater(c.Request.Context(), uid, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

// ---------- Sleep ----------

type sleepInput struct {
	Day     string   `json:"date"`
	Hours   *float64 `json:"hours" binding:"required"`
	Quality int      `json:"quality"`
}

func (hc *HealthLogController) LogSleep(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var in sleepInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s, err := hc.Logs.LogSleep(c.Request.Context(), uid, services.SleepInput{Day: in.Day, Hours: *in.Hours, Quality: in.Quality})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (hc *HealthLogController) SleepHistory(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	h, err := hc.Dashboard.SleepHistory(c.Request.Context(), uid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h)
}

// ---------- Weight ----------

type weightInput struct {
	Day    string   `json:"date"`
	Weight *float64 `json:"weight" binding:"required"`
}

func (hc *HealthLogController) LogWeight(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	var in weightInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	w, err := hc.Logs.LogWeight(c.Request.Context(), uid, in.Day, *in.Weight)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

// GetWeight returns the current weight as of ?date= plus recent entries.
func (hc *HealthLogController) GetWeight(c *gin.Context) {
	uid, ok := requireUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	current, err := hc.Logs.CurrentWeight(ctx, uid, c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	recent, err := hc.Logs.RecentWeights(ctx, uid, 10)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"current": current, "recent": recent})
}
