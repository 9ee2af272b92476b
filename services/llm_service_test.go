package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMacroEstimate(t *testing.T) {
	out, err := parseMacroEstimate(`{"calories": 420, "protein": 18, "carbs": 52, "fats": 12}`)
	require.NoError(t, err)

	assert.Equal(t, 420.0, out["calories_kcal"])
	assert.Equal(t, 18.0, out["protein_g"])
	assert.Equal(t, 52.0, out["total_carbohydrate_g"])
	assert.Equal(t, 12.0, out["total_fat_g"])
}

func TestParseMacroEstimateExtractsObjectFromProse(t *testing.T) {
	out, err := parseMacroEstimate("Here is the estimate:\n```json\n{\"calories\": 300, \"protein\": 10, \"carbs\": 40, \"fats\": 8}\n```")
	require.NoError(t, err)
	assert.Equal(t, 300.0, out["calories_kcal"])
}

func TestParseMacroEstimateClampsNegatives(t *testing.T) {
	out, err := parseMacroEstimate(`{"calories": -120, "protein": -3, "carbs": -1, "fats": -0.5}`)
	require.NoError(t, err)

	for _, key := range []string{"calories_kcal", "protein_g", "total_carbohydrate_g", "total_fat_g"} {
		assert.Equal(t, 0.0, out[key], key)
	}
}

func TestParseMacroEstimateBadJSON(t *testing.T) {
	_, err := parseMacroEstimate("sorry, I cannot help with that")
	assert.Error(t, err)
}
