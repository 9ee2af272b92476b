package controllers

import (
	"net/http"
	"strconv"

	"github.com/shivtchandra/food-analysis/services"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Index *services.FoodIndex
}

func NewFoodController(index *services.FoodIndex) *FoodController {
	return &FoodController{Index: index}
}

// Search returns the best local food-reference matches for a free-text
// name, used by the item editor's candidate picker.
func (fc *FoodController) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q is required"})
		return
	}

	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	c.JSON(http.StatusOK, gin.H{"matches": fc.Index.TopMatches(q, limit)})
}
