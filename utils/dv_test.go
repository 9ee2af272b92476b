package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestClassifyDV(t *testing.T) {
	assert.Equal(t, DVClass{Label: "No data", Category: DVUnknown}, ClassifyDV(nil))
	assert.Equal(t, DVClass{Label: "High", Category: DVHigh}, ClassifyDV(ptr(20)))
	assert.Equal(t, DVClass{Label: "High", Category: DVHigh}, ClassifyDV(ptr(150)))
	assert.Equal(t, DVClass{Label: "Moderate", Category: DVModerate}, ClassifyDV(ptr(5)))
	assert.Equal(t, DVClass{Label: "Moderate", Category: DVModerate}, ClassifyDV(ptr(19.9)))
	assert.Equal(t, DVClass{Label: "Low", Category: DVLow}, ClassifyDV(ptr(4.9)))
	assert.Equal(t, DVClass{Label: "Low", Category: DVLow}, ClassifyDV(ptr(0)))
}

func TestPercentDV(t *testing.T) {
	pct, ok := PercentDV("protein_g", 25)
	require.True(t, ok)
	assert.Equal(t, 50.0, pct)

	pct, ok = PercentDV("iron_mg", 9)
	require.True(t, ok)
	assert.Equal(t, 50.0, pct)

	_, ok = PercentDV("calories_kcal", 2000)
	assert.False(t, ok)
}

func TestRankLacking(t *testing.T) {
	totals := map[string]float64{
		"protein_g":  60,   // 120%, not lacking
		"iron_mg":    9,    // 50%
		"calcium_mg": 130,  // 10%
		"sodium_mg":  2300, // 100%, not lacking
	}

	ranked := RankLacking(totals)
	require.NotEmpty(t, ranked)

	// everything without a published total ranks first at 0%
	assert.Equal(t, 0.0, ranked[0].Pct)

	// ascending order throughout
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, ranked[i-1].Pct, ranked[i].Pct)
	}

	byName := map[string]float64{}
	for _, l := range ranked {
		byName[l.Nutrient] = l.Pct
	}
	assert.Equal(t, 50.0, byName["iron_mg"])
	assert.Equal(t, 10.0, byName["calcium_mg"])
	assert.NotContains(t, byName, "protein_g")
	assert.NotContains(t, byName, "sodium_mg")
}

func TestDisplayNutrientName(t *testing.T) {
	assert.Equal(t, "dietary fiber g", DisplayNutrientName("dietary_fiber_g"))
}
