package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shivtchandra/food-analysis/models"
	"github.com/shivtchandra/food-analysis/utils"

	"gorm.io/gorm"
)

type AnalyticsService struct {
	db    *gorm.DB
	meals *MealService
}

func NewAnalyticsService(db *gorm.DB, meals *MealService) *AnalyticsService {
	return &AnalyticsService{db: db, meals: meals}
}

// RangeSummary aggregates the last rangeDays of meal history into totals
// and per-day averages.
type RangeSummary struct {
	Days      []DaySummary       `json:"days"`
	Total     map[string]float64 `json:"total"`
	AvgPerDay map[string]float64 `json:"avg_per_day"`
}

func (s *AnalyticsService) Summary(userID uint, rangeDays int) (*RangeSummary, error) {
	if rangeDays <= 0 {
		rangeDays = 7
	}
	end := time.Now()
	start := end.AddDate(0, 0, -rangeDays)

	days, err := s.meals.History(userID, start, end)
	if err != nil {
		return nil, err
	}

	total := map[string]float64{
		"calories": 0, "protein_g": 0, "carbs_g": 0, "fat_g": 0, "fiber_g": 0,
	}
	for _, d := range days {
		total["calories"] += d.Calories
		total["protein_g"] += d.ProteinG
		total["carbs_g"] += d.CarbsG
		total["fat_g"] += d.FatG
		total["fiber_g"] += d.FiberG
	}
	den := float64(len(days))
	if den == 0 {
		den = 1
	}
	avg := make(map[string]float64, len(total))
	for k, v := range total {
		avg[k] = v / den
	}
	return &RangeSummary{Days: days, Total: total, AvgPerDay: avg}, nil
}

// MealLine is one meal in a daily summary, rounded for display.
type MealLine struct {
	Item     string  `json:"item"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fats_g"`
}

// DailySummary is the personalized end-of-day report: intake vs the
// profile-derived targets, the heaviest meals, and plain-text advice.
type DailySummary struct {
	Date            string             `json:"date"`
	ProfileUsed     utils.Targets      `json:"profile_used"`
	Totals          map[string]float64 `json:"totals"`
	GapsVsTarget    map[string]float64 `json:"gaps_vs_target"`
	TopMealsByCal   []MealLine         `json:"top_meals_by_cal"`
	Recommendations []string           `json:"recommendations"`
	GeneratedAt     time.Time          `json:"generated_at"`
}

func (s *AnalyticsService) DailySummary(userID uint, day time.Time) (*DailySummary, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	targets := utils.TargetsFromProfile(utils.Profile{
		Sex:           user.Sex,
		Age:           float64(user.Age),
		HeightCm:      user.HeightCm,
		WeightKg:      user.WeightKg,
		ActivityLevel: user.ActivityLevel,
		Goal:          user.Goal,
	})

	logs, err := s.meals.ListForDay(userID, day)
	if err != nil {
		return nil, err
	}

	totals := map[string]float64{"calories": 0, "protein_g": 0, "carbs_g": 0, "fats_g": 0}
	meals := make([]MealLine, 0, len(logs))
	for _, l := range logs {
		ns := l.Nutrients
		cal := ns["calories_kcal"]
		prot := ns["protein_g"]
		carbs := pickNutrient(ns, "carbs_g", "total_carbohydrate_g")
		fats := pickNutrient(ns, "fats_g", "total_fat_g")

		totals["calories"] += cal
		totals["protein_g"] += prot
		totals["carbs_g"] += carbs
		totals["fats_g"] += fats
		meals = append(meals, MealLine{
			Item:     l.ItemName,
			Calories: math.Round(cal),
			ProteinG: round1(prot),
			CarbsG:   round1(carbs),
			FatG:     round1(fats),
		})
	}
	for k, v := range totals {
		totals[k] = round1(v)
	}

	gaps := map[string]float64{
		"calories_gap":  math.Round(totals["calories"] - targets.CalorieTarget),
		"protein_gap_g": math.Round(totals["protein_g"] - targets.ProteinG),
		"carb_gap_g":    math.Round(totals["carbs_g"] - targets.CarbG),
		"fat_gap_g":     math.Round(totals["fats_g"] - targets.FatG),
	}

	sort.SliceStable(meals, func(i, j int) bool { return meals[i].Calories > meals[j].Calories })
	top := meals
	if len(top) > 3 {
		top = top[:3]
	}

	return &DailySummary{
		Date:            day.Format("2006-01-02"),
		ProfileUsed:     targets,
		Totals:          totals,
		GapsVsTarget:    gaps,
		TopMealsByCal:   top,
		Recommendations: adviceFor(totals, targets),
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// adviceFor emits plain-language nudges when the day sits far enough off
// target; a day within tolerance gets a single encouragement line.
func adviceFor(totals map[string]float64, targets utils.Targets) []string {
	var recs []string

	calGap := math.Round(totals["calories"] - targets.CalorieTarget)
	if calGap > 150 {
		recs = append(recs, fmt.Sprintf("Calories %.0f kcal over target — trim portion size at dinner or swap a sugary drink for water.", calGap))
	} else if calGap < -150 {
		recs = append(recs, fmt.Sprintf("Calories %.0f kcal under target — add a snack (e.g., yogurt + fruit) or increase carbs at lunch.", -calGap))
	}

	if pGap := math.Round(targets.ProteinG - totals["protein_g"]); pGap > 15 {
		recs = append(recs, fmt.Sprintf("Protein is low by ~%.0f g — add eggs, paneer, dal, chicken, or Greek yogurt.", pGap))
	}
	if totals["carbs_g"] > targets.CarbG+40 {
		recs = append(recs, "Carbs were quite high — consider switching one refined-carb item to legumes/veggies.")
	}
	if totals["fats_g"] > targets.FatG+20 {
		recs = append(recs, "Fats were high — reduce fried/oily items; prefer nuts/seeds in measured portions.")
	}

	if len(recs) == 0 {
		recs = append(recs, "Great balance today — keep portions steady and prioritize whole foods.")
	}
	return recs
}

