package controllers

import (
	"net/http"

	"github.com/shivtchandra/food-analysis/config"
	"github.com/shivtchandra/food-analysis/models"

	"github.com/gin-gonic/gin"
)

type GoalInput struct {
	Calories     float64 `json:"calories"`
	ProteinG     float64 `json:"protein_g"`
	CarbsG       float64 `json:"carbs_g"`
	FatG         float64 `json:"fat_g"`
	DietaryFiber float64 `json:"dietary_fiber_g"`
	SodiumMg     float64 `json:"sodium_mg"`
}

// SetDailyGoal upserts the user's daily intake targets.
func SetDailyGoal(c *gin.Context) {
	userID := c.GetUint("userID")

	var input GoalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var goal models.DailyGoal
	if err := config.DB.Where("user_id = ?", userID).First(&goal).Error; err != nil {
		goal = models.DailyGoal{UserID: userID}
	}
	goal.Calories = input.Calories
	goal.ProteinG = input.ProteinG
	goal.CarbsG = input.CarbsG
	goal.FatG = input.FatG
	goal.DietaryFiber = input.DietaryFiber
	goal.SodiumMg = input.SodiumMg

	if err := config.DB.Save(&goal).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save goal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

func GetDailyGoal(c *gin.Context) {
	userID := c.GetUint("userID")

	var goal models.DailyGoal
	if err := config.DB.Where("user_id = ?", userID).Order("created_at DESC").First(&goal).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no daily goal set"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}
