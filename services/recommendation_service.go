package services

import (
	"time"

	"github.com/shivtchandra/food-analysis/models"

	"gorm.io/gorm"
)

type RecommendationService struct {
	db    *gorm.DB
	meals *MealService
}

func NewRecommendationService(db *gorm.DB, meals *MealService) *RecommendationService {
	return &RecommendationService{db: db, meals: meals}
}

type FoodSuggestion struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Recommendation struct {
	Reason      string           `json:"reason"`
	Suggestions []FoodSuggestion `json:"suggestions"`
}

// deficit triggers when the day's intake is below this share of the goal
const deficitRatio = 0.8

// Recommend compares one day's intake against the user's DailyGoal and
// suggests foods from the reference table for each shortfall. With no
// specific deficit (or no goal set) it falls back to a general pick list.
func (s *RecommendationService) Recommend(userID uint, day time.Time) ([]Recommendation, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	days, err := s.meals.History(userID, start, start)
	if err != nil {
		return nil, err
	}
	var totals DaySummary
	if len(days) > 0 {
		totals = days[0]
	}

	var goal models.DailyGoal
	hasGoal := s.db.Where("user_id = ?", userID).Order("created_at DESC").First(&goal).Error == nil

	var recs []Recommendation
	if hasGoal && goal.ProteinG > 0 && totals.ProteinG < goal.ProteinG*deficitRatio {
		recs = append(recs, Recommendation{
			Reason:      "protein_deficit",
			Suggestions: s.suggestByTag("protein", 5),
		})
	}
	if hasGoal && goal.DietaryFiber > 0 && totals.FiberG < goal.DietaryFiber*deficitRatio {
		recs = append(recs, Recommendation{
			Reason:      "fiber_deficit",
			Suggestions: s.suggestByTag("fiber", 5),
		})
	}
	if len(recs) == 0 {
		recs = append(recs, Recommendation{
			Reason:      "general",
			Suggestions: s.suggestByTag("", 6),
		})
	}
	return recs, nil
}

func (s *RecommendationService) suggestByTag(tag string, limit int) []FoodSuggestion {
	var foods []models.FoodEntry
	q := s.db.Limit(limit)
	if tag != "" {
		q = q.Where("tags LIKE ?", "%"+tag+"%")
	}
	if err := q.Find(&foods).Error; err != nil {
		return nil
	}
	out := make([]FoodSuggestion, 0, len(foods))
	for _, f := range foods {
		out = append(out, FoodSuggestion{ID: f.ID, Name: f.Name})
	}
	return out
}
