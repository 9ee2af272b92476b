package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertUnit(t *testing.T) {
	assert.Equal(t, 5.0, convertUnit(5, "MG", "mg"))
	assert.Equal(t, 0.5, convertUnit(500, "mcg", "mg"))
	assert.Equal(t, 500.0, convertUnit(0.5, "mg", "mcg"))
	assert.Equal(t, 2000.0, convertUnit(2, "g", "mg"))
	assert.Equal(t, 0.002, convertUnit(2, "mg", "g"))
	assert.Equal(t, 1.5, convertUnit(1.5, "μg", "mcg")) // greek mu alias
	assert.Equal(t, 7.0, convertUnit(7, "iu", "mg"))    // unknown pair passes through
}

func TestExtractFDCNutrientsNameFallbacks(t *testing.T) {
	var detail fdcFoodDetail
	require.NoError(t, json.Unmarshal([]byte(`{
		"foodNutrients": [
			{"nutrient": {"name": "Protein", "unitName": "G"}, "amount": 12.5},
			{"nutrientName": "Iron, Fe", "value": 2.2, "unitName": "MG"},
			{"name": "Sodium, Na", "amount": 0.3, "unitName": "G"},
			{"nutrientName": "Unmapped Component", "value": 9},
			{"nutrientName": "Calcium, Ca"}
		]
	}`), &detail))

	out := extractFDCNutrients(&detail)

	assert.Equal(t, 12.5, out["protein_g"])
	assert.Equal(t, 2.2, out["iron_mg"])
	assert.Equal(t, 300.0, out["sodium_mg"]) // g converted to mg
	assert.NotContains(t, out, "calcium_mg") // no amount at all
	assert.Len(t, out, 3)
}

func TestExtractFDCNutrientsLabelFallback(t *testing.T) {
	var detail fdcFoodDetail
	require.NoError(t, json.Unmarshal([]byte(`{
		"foodNutrients": [],
		"labelNutrients": {
			"calories": {"value": 250},
			"protein":  {"value": 10},
			"fiber":    {"value": 3},
			"unknown":  {"value": 99},
			"sodium":   {}
		}
	}`), &detail))

	out := extractFDCNutrients(&detail)

	assert.Equal(t, 250.0, out["calories_kcal"])
	assert.Equal(t, 10.0, out["protein_g"])
	assert.Equal(t, 3.0, out["dietary_fiber_g"])
	assert.Len(t, out, 3)
}

func TestExtractFDCNutrientsPrefersComponentData(t *testing.T) {
	var detail fdcFoodDetail
	require.NoError(t, json.Unmarshal([]byte(`{
		"foodNutrients": [
			{"nutrient": {"name": "Protein", "unitName": "G"}, "amount": 12.5}
		],
		"labelNutrients": {"protein": {"value": 99}}
	}`), &detail))

	out := extractFDCNutrients(&detail)
	assert.Equal(t, 12.5, out["protein_g"])
}
