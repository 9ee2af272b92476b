package controllers

import (
	"net/http"

	"github.com/shivtchandra/food-analysis/config"
	"github.com/shivtchandra/food-analysis/models"
	"github.com/shivtchandra/food-analysis/services"
	"github.com/shivtchandra/food-analysis/utils"

	"github.com/gin-gonic/gin"
)

type RegisterInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name" binding:"required"`
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := services.RegisterUser(input.Email, input.Password, input.DisplayName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "registration successful"})
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := services.AuthenticateUser(input.Email, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func GetProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	targets := utils.TargetsFromProfile(utils.Profile{
		Sex:           user.Sex,
		Age:           float64(user.Age),
		HeightCm:      user.HeightCm,
		WeightKg:      user.WeightKg,
		ActivityLevel: user.ActivityLevel,
		Goal:          user.Goal,
	})

	c.JSON(http.StatusOK, gin.H{
		"email":          user.Email,
		"display_name":   user.DisplayName,
		"age":            user.Age,
		"sex":            user.Sex,
		"height_cm":      user.HeightCm,
		"weight_kg":      user.WeightKg,
		"activity_level": user.ActivityLevel,
		"goal":           user.Goal,
		"targets":        targets,
	})
}

type ProfileInput struct {
	DisplayName   *string  `json:"display_name"`
	Age           *int     `json:"age"`
	Sex           *string  `json:"sex"`
	HeightCm      *float64 `json:"height_cm"`
	WeightKg      *float64 `json:"weight_kg"`
	ActivityLevel *string  `json:"activity_level"`
	Goal          *string  `json:"goal"`
}

func UpdateProfile(c *gin.Context) {
	userID := c.GetUint("userID")

	var input ProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Age != nil {
		user.Age = *input.Age
	}
	if input.Sex != nil {
		user.Sex = *input.Sex
	}
	if input.HeightCm != nil {
		user.HeightCm = *input.HeightCm
	}
	if input.WeightKg != nil {
		user.WeightKg = *input.WeightKg
	}
	if input.ActivityLevel != nil {
		user.ActivityLevel = *input.ActivityLevel
	}
	if input.Goal != nil {
		user.Goal = *input.Goal
	}

	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated"})
}
