package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null"`
	Password    string `gorm:"not null"`
	DisplayName string

	// profile fields feeding the calorie/macro target calculation
	Age           int
	Sex           string
	HeightCm      float64
	WeightKg      float64
	ActivityLevel string // sedentary|light|moderate|very|extra
	Goal          string // cut|maintain|bulk
}
