package models

import (
	"time"

	"gorm.io/gorm"
)

// MealLog is one confirmed food line with its scaled nutrient snapshot.
type MealLog struct {
	gorm.Model
	UserID         uint `gorm:"index"`
	ItemName       string
	Quantity       float64
	PortionMult    float64
	ManualCalories *float64
	Nutrients      NutrientMap `gorm:"type:jsonb"` // snapshot at log time
	Source         string      // "scan" | "manual"
	AteAt          time.Time   `gorm:"index"`
}
