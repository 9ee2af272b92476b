package controllers

import (
	"net/http"

	"github.com/shivtchandra/food-analysis/services"

	"github.com/gin-gonic/gin"
)

type RecommendationController struct {
	Recs *services.RecommendationService
}

func NewRecommendationController(recs *services.RecommendationService) *RecommendationController {
	return &RecommendationController{Recs: recs}
}

// Recommendations suggests foods for nutrients the user fell short on
// during the given day.
func (rc *RecommendationController) Recommendations(c *gin.Context) {
	userID := c.GetUint("userID")

	day, ok := parseDayQuery(c)
	if !ok {
		return
	}

	recs, err := rc.Recs.Recommend(userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}
