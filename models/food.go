package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

// NutrientMap stores per-nutrient amounts keyed by snake_case nutrient
// names ("calories_kcal", "protein_g", ...), persisted as a JSON column.
type NutrientMap map[string]float64

func (n NutrientMap) Value() (driver.Value, error) {
	if n == nil {
		return "{}", nil
	}
	b, err := json.Marshal(n)
	return string(b), err
}

func (n *NutrientMap) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*n = NutrientMap{}
		return nil
	case []byte:
		return json.Unmarshal(v, n)
	case string:
		return json.Unmarshal([]byte(v), n)
	default:
		return errors.New("unsupported nutrient map column type")
	}
}

// FoodEntry is one row of the local food reference used for candidate
// matching before any FoodData Central round trip.
type FoodEntry struct {
	gorm.Model
	Name        string      `gorm:"not null"`
	Norm        string      `gorm:"index"` // normalized name for matching
	ServingSize float64
	ServingUnit string
	Nutrients   NutrientMap `gorm:"type:jsonb"`
	Tags        string      // comma-separated, e.g. "protein,breakfast"
}
