package routes

import (
	"net/http"

	"healthtrack/controllers"
	"healthtrack/middlewares"
	"healthtrack/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps carries the constructed services into the router. Recognition and
// Push may be nil.
type Deps struct {
	JWTSecret   string
	Log         *zap.Logger
	Users       *services.UserService
	Logs        *services.HealthLogService
	Dashboard   *services.DashboardService
	Insights    *services.InsightsService
	Analyzer    *services.NutritionAnalyzer
	Recognition *services.RecognitionService
	Push        *services.PushService
	Hub         *services.RealtimeHub
}

func SetupRouter(d Deps) *gin.Engine {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger(d.Log))

	authCtl := controllers.NewAuthController(d.Users)
	userCtl := controllers.NewUserController(d.Users)
	logCtl := controllers.NewHealthLogController(d.Logs, d.Dashboard, d.Recognition)
	dashCtl := controllers.NewDashboardController(d.Dashboard)
	aiCtl := controllers.NewAIController(d.Analyzer, d.Users, d.Insights)
	devCtl := controllers.NewDeviceController(d.Push)
	rtCtl := controllers.NewRealtimeController(d.Hub, d.Dashboard)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtl.Register)
		auth.POST("/login", authCtl.Login)
	}

	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware(d.JWTSecret, d.Users))

	user := protected.Group("/user")
	{
		user.GET("/profile", userCtl.GetProfile)
		user.PUT("/profile", userCtl.UpdateProfile)
		user.DELETE("/profile", userCtl.DeleteProfile)
	}

	logs := protected.Group("/log")
	{
		logs.POST("/meals", logCtl.LogMeal)
		logs.GET("/meals", logCtl.ListMeals)
		logs.DELETE("/meals/:id", logCtl.DeleteMeal)
		logs.POST("/meals/recognize", logCtl.RecognizeMeal)

		logs.POST("/exercise", logCtl.LogExercise)
		logs.GET("/exercise", logCtl.ListExercise)
		logs.DELETE("/exercise/:id", logCtl.DeleteExercise)

		logs.POST("/water", logCtl.LogWater)
		logs.GET("/water", logCtl.ListWater)
		logs.DELETE("/water", logCtl.ClearWater)

		logs.POST("/sleep", logCtl.LogSleep)
		logs.GET("/sleep/history", logCtl.SleepHistory)

		logs.POST("/weight", logCtl.LogWeight)
		logs.GET("/weight", logCtl.GetWeight)
	}

	protected.GET("/dashboard", dashCtl.Day)
	protected.GET("/summary/weekly", dashCtl.WeeklySummary)

	ai := protected.Group("/ai")
	{
		ai.GET("/status", aiCtl.Status)
		ai.POST("/analyze-meal", aiCtl.AnalyzeMeal)
		ai.POST("/meal-plan", aiCtl.MealPlan)
		ai.POST("/improve-meal", aiCtl.ImproveMeal)
		ai.GET("/insights", aiCtl.Insights)
		ai.GET("/insights/history", aiCtl.InsightsHistory)
	}

	protected.POST("/devices", devCtl.Register)
	protected.GET("/ws/day", rtCtl.DayWS)

	return r
}
