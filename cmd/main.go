package main

import (
	"log"

	"github.com/shivtchandra/food-analysis/config"
	"github.com/shivtchandra/food-analysis/controllers"
	"github.com/shivtchandra/food-analysis/routes"
	"github.com/shivtchandra/food-analysis/services"
	"github.com/shivtchandra/food-analysis/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	utils.InitMailer()

	index, err := services.LoadFoodIndex(config.DB)
	if err != nil {
		log.Fatalf("food index load failed: %v", err)
	}
	log.Printf("food index loaded: %d entries", index.Len())

	ocr, err := services.NewOCRService()
	if err != nil {
		log.Fatalf("OCR init failed: %v", err)
	}

	push, err := services.NewPushService(config.DB)
	if err != nil {
		log.Printf("push disabled: %v", err)
		push = nil
	}

	hub := services.NewRealtimeHub()
	sessions := services.NewSessionStore()
	detector := services.NewDetectionService(index)
	nutrients := services.NewNutrientService(index, services.NewFDCService(config.DB), services.NewGeminiEstimator())
	meals := services.NewMealService(config.DB)
	analytics := services.NewAnalyticsService(config.DB, meals)
	recs := services.NewRecommendationService(config.DB, meals)

	r := routes.SetupRouter(routes.Controllers{
		Scan:     controllers.NewScanController(sessions, detector, ocr, nutrients, meals, hub, push),
		Meal:     controllers.NewMealController(meals, index),
		Food:     controllers.NewFoodController(index),
		Analytic: controllers.NewAnalyticsController(analytics),
		Rec:      controllers.NewRecommendationController(recs),
		Device:   controllers.NewDeviceController(push),
		Realtime: controllers.NewRealtimeController(hub),
	})
	r.Run(":8080")
}
