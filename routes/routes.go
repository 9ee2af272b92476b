package routes

import (
	"github.com/shivtchandra/food-analysis/controllers"
	"github.com/shivtchandra/food-analysis/middlewares"

	"github.com/gin-gonic/gin"
)

// Controllers bundles the request handlers SetupRouter mounts.
type Controllers struct {
	Scan     *controllers.ScanController
	Meal     *controllers.MealController
	Food     *controllers.FoodController
	Analytic *controllers.AnalyticsController
	Rec      *controllers.RecommendationController
	Device   *controllers.DeviceController
	Realtime *controllers.RealtimeController
}

func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.GET("/goals", controllers.GetDailyGoal)
		user.PUT("/goals", controllers.SetDailyGoal)
	}

	scans := r.Group("/scans")
	scans.Use(middlewares.AuthMiddleware())
	{
		scans.POST("", ctl.Scan.StartScan)
		scans.GET("/:id/items", ctl.Scan.GetItems)
		scans.POST("/:id/items", ctl.Scan.AppendItem)
		scans.PATCH("/:id/items/:itemId", ctl.Scan.UpdateItem)
		scans.DELETE("/:id/items/:itemId", ctl.Scan.RemoveItem)
		scans.POST("/:id/confirm", ctl.Scan.Confirm)
		scans.GET("/:id/summary", ctl.Scan.GetSummary)
		scans.DELETE("/:id", ctl.Scan.DeleteScan)
	}

	meals := r.Group("/meals")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.POST("", ctl.Meal.LogManual)
		meals.GET("/history", ctl.Meal.History)
		meals.GET("/day", ctl.Meal.ListForDay)
	}

	foods := r.Group("/foods")
	foods.Use(middlewares.AuthMiddleware())
	{
		foods.GET("/search", ctl.Food.Search)
	}

	analytics := r.Group("/analytics")
	analytics.Use(middlewares.AuthMiddleware())
	{
		analytics.GET("/summary", ctl.Analytic.RangeSummary)
		analytics.GET("/daily", ctl.Analytic.DailySummary)
		analytics.POST("/daily/email", ctl.Analytic.EmailDailySummary)
	}

	recs := r.Group("/recommendations")
	recs.Use(middlewares.AuthMiddleware())
	{
		recs.GET("", ctl.Rec.Recommendations)
	}

	devices := r.Group("/devices")
	devices.Use(middlewares.AuthMiddleware())
	{
		devices.POST("", ctl.Device.RegisterDevice)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/events", ctl.Realtime.EventsWS)
	}

	return r
}
