package services

import (
	"strings"
	"testing"

	"github.com/shivtchandra/food-analysis/models"
	"github.com/shivtchandra/food-analysis/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adviceTargets = utils.Targets{
	CalorieTarget: 2000,
	ProteinG:      120,
	CarbG:         220,
	FatG:          60,
}

func TestAdviceWithinTolerance(t *testing.T) {
	recs := adviceFor(map[string]float64{
		"calories": 1950, "protein_g": 115, "carbs_g": 210, "fats_g": 55,
	}, adviceTargets)

	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "Great balance")
}

func TestAdviceOverCalories(t *testing.T) {
	recs := adviceFor(map[string]float64{
		"calories": 2400, "protein_g": 120, "carbs_g": 220, "fats_g": 60,
	}, adviceTargets)

	require.NotEmpty(t, recs)
	assert.Contains(t, recs[0], "over target")
	assert.Contains(t, recs[0], "400")
}

func TestAdviceLowProteinAndUnderCalories(t *testing.T) {
	recs := adviceFor(map[string]float64{
		"calories": 1500, "protein_g": 60, "carbs_g": 180, "fats_g": 50,
	}, adviceTargets)

	joined := strings.Join(recs, "\n")
	assert.Contains(t, joined, "under target")
	assert.Contains(t, joined, "Protein is low")
}

func TestAdviceHighCarbsAndFats(t *testing.T) {
	recs := adviceFor(map[string]float64{
		"calories": 2000, "protein_g": 120, "carbs_g": 300, "fats_g": 95,
	}, adviceTargets)

	joined := strings.Join(recs, "\n")
	assert.Contains(t, joined, "Carbs were quite high")
	assert.Contains(t, joined, "Fats were high")
}

func TestPickNutrientLegacyKeys(t *testing.T) {
	ns := models.NutrientMap{"carbs": 45}
	assert.Equal(t, 45.0, pickNutrient(ns, "total_carbohydrate_g", "carbs"))

	ns = models.NutrientMap{"total_carbohydrate_g": 50, "carbs": 45}
	assert.Equal(t, 50.0, pickNutrient(ns, "total_carbohydrate_g", "carbs"))

	assert.Equal(t, 0.0, pickNutrient(models.NutrientMap{}, "total_fat_g", "fat"))
}
