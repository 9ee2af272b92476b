package controllers

import (
	"net/http"
	"time"

	"github.com/shivtchandra/food-analysis/models"
	"github.com/shivtchandra/food-analysis/services"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Meals *services.MealService
	Index *services.FoodIndex
}

func NewMealController(meals *services.MealService, index *services.FoodIndex) *MealController {
	return &MealController{Meals: meals, Index: index}
}

type ManualMealInput struct {
	Item           string   `json:"item" binding:"required"`
	Quantity       float64  `json:"quantity"`
	PortionMult    float64  `json:"portion_mult"`
	ManualCalories *float64 `json:"manual_calories"`
	AteAt          string   `json:"ate_at"` // RFC3339, defaults to now
}

// LogManual records a meal typed in without a scan. Nutrients come from
// the local food reference when the name matches, otherwise only the
// manual calories are kept.
func (mc *MealController) LogManual(c *gin.Context) {
	userID := c.GetUint("userID")

	var input ManualMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ateAt := time.Now()
	if input.AteAt != "" {
		t, err := time.Parse(time.RFC3339, input.AteAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ate_at must be RFC3339"})
			return
		}
		ateAt = t
	}

	var nutrients models.NutrientMap
	if match := mc.Index.Match(input.Item, 40); match != nil {
		nutrients = match.Nutrients
	}

	logEntry, err := mc.Meals.LogManual(userID, input.Item, input.Quantity, input.PortionMult, input.ManualCalories, nutrients, ateAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"meal": logEntry})
}

// History returns per-day intake aggregates for a date range, default the
// last 7 days.
func (mc *MealController) History(c *gin.Context) {
	userID := c.GetUint("userID")

	to := time.Now()
	from := to.AddDate(0, 0, -7)
	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return
		}
		to = t
	}

	days, err := mc.Meals.History(userID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"days": days})
}

// ListForDay returns the raw meal logs for one day.
func (mc *MealController) ListForDay(c *gin.Context) {
	userID := c.GetUint("userID")

	day, ok := parseDayQuery(c)
	if !ok {
		return
	}

	logs, err := mc.Meals.ListForDay(userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": logs})
}

// parseDayQuery reads the optional ?date=YYYY-MM-DD parameter, defaulting
// to today. On a malformed value it writes the 400 itself.
func parseDayQuery(c *gin.Context) (time.Time, bool) {
	v := c.Query("date")
	if v == "" {
		return time.Now(), true
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}
