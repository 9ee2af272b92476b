package models

import (
	"gorm.io/gorm"
)

// FDCCache memoizes FoodData Central lookups per normalized query so a
// repeated scan of the same item costs no API round trip.
type FDCCache struct {
	gorm.Model
	Query      string      `gorm:"uniqueIndex;not null"`
	Nutrients  NutrientMap `gorm:"type:jsonb"`
	Provenance string      // raw provenance JSON as returned by the lookup
}
