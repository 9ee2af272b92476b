package controllers

import (
	"net/http"
	"strconv"

	"github.com/shivtchandra/food-analysis/services"
	"github.com/shivtchandra/food-analysis/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	Analytics *services.AnalyticsService
}

func NewAnalyticsController(analytics *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Analytics: analytics}
}

// RangeSummary aggregates intake over the trailing N days (?days=, default 7).
func (ac *AnalyticsController) RangeSummary(c *gin.Context) {
	userID := c.GetUint("userID")

	days := 7
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = n
	}

	summary, err := ac.Analytics.Summary(userID, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// DailySummary builds the personalized end-of-day report.
func (ac *AnalyticsController) DailySummary(c *gin.Context) {
	userID := c.GetUint("userID")

	day, ok := parseDayQuery(c)
	if !ok {
		return
	}

	summary, err := ac.Analytics.DailySummary(userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// EmailDailySummary mails the report to the signed-in user's address.
func (ac *AnalyticsController) EmailDailySummary(c *gin.Context) {
	userID := c.GetUint("userID")

	day, ok := parseDayQuery(c)
	if !ok {
		return
	}

	summary, err := ac.Analytics.DailySummary(userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	email := c.GetString("email")
	if email == "" {
		user, err := services.FindUserByID(userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		email = user.Email
	}

	if err := utils.SendDailySummaryEmail(email, summary.Date, summary.Totals, summary.Recommendations); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send summary email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "summary emailed"})
}
