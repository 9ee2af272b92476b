package services

import (
	"testing"

	"github.com/shivtchandra/food-analysis/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIndex() *FoodIndex {
	return NewFoodIndex([]models.FoodEntry{
		{Name: "Paneer Pizza", Nutrients: models.NutrientMap{"calories_kcal": 700}},
		{Name: "Veg Biryani", Nutrients: models.NutrientMap{"calories_kcal": 420}},
		{Name: "Greek Salad", Nutrients: models.NutrientMap{"calories_kcal": 220}, Tags: "fiber"},
		{Name: "Chicken Burger", Nutrients: models.NutrientMap{"calories_kcal": 550, "protein_g": 30}, Tags: "protein"},
	})
}

func TestNormalizeFoodName(t *testing.T) {
	assert.Equal(t, "paneer pizza", NormalizeFoodName("  Paneer Pizza! "))
	assert.Equal(t, "7 up", NormalizeFoodName("7 Up"))
	assert.Equal(t, "", NormalizeFoodName("!!!"))
}

func TestMatchExact(t *testing.T) {
	ix := testIndex()

	m := ix.Match("Paneer Pizza", 40)
	require.NotNil(t, m)
	assert.Equal(t, "Paneer Pizza", m.Name)
	assert.Equal(t, 100, m.Score)
}

func TestMatchSubstring(t *testing.T) {
	ix := testIndex()

	m := ix.Match("Biryani", 40)
	require.NotNil(t, m)
	assert.Equal(t, "Veg Biryani", m.Name)
	assert.Equal(t, 85, m.Score)
}

func TestMatchTokenOverlap(t *testing.T) {
	ix := testIndex()

	// "chicken tikka burger" vs "chicken burger": 2 common of 3+2 tokens
	m := ix.Match("Chicken Tikka Burger", 40)
	require.NotNil(t, m)
	assert.Equal(t, "Chicken Burger", m.Name)
	assert.Equal(t, 80, m.Score)
}

func TestMatchBelowThreshold(t *testing.T) {
	ix := testIndex()
	assert.Nil(t, ix.Match("Spaghetti Carbonara", 40))
	assert.Nil(t, ix.Match("", 40))
}

func TestTopMatchesOrderedAndCapped(t *testing.T) {
	ix := testIndex()

	matches := ix.TopMatches("Pizza", 2)
	require.NotEmpty(t, matches)
	assert.Equal(t, "Paneer Pizza", matches[0].Name)
	assert.LessOrEqual(t, len(matches), 2)
	for i := 1; i < len(matches); i++ {
		assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
	}
}
