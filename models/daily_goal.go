package models

import (
	"gorm.io/gorm"
)

// DailyGoal holds a user's daily nutrient-intake targets.
type DailyGoal struct {
	gorm.Model
	UserID       uint    `gorm:"index;not null"`
	Calories     float64 // kcal
	ProteinG     float64
	CarbsG       float64
	FatG         float64
	DietaryFiber float64 // g
	SodiumMg     float64
}
