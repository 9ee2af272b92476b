package services

import (
	"testing"

	"github.com/shivtchandra/food-analysis/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceNutrientReportEmptyInputs(t *testing.T) {
	for _, raw := range []string{"", "null", "{}", "[1,2,3]", "not json at all"} {
		sum := ReduceNutrientReport([]byte(raw))
		assert.NotNil(t, sum.MicronutrientTotals, raw)
		assert.Empty(t, sum.MicronutrientTotals, raw)
		assert.NotNil(t, sum.PercentDV, raw)
		assert.Empty(t, sum.PercentDV, raw)
		assert.NotNil(t, sum.TopLacking, raw)
		assert.Empty(t, sum.TopLacking, raw)
		assert.NotNil(t, sum.PerItemProvenance, raw)
		assert.Empty(t, sum.PerItemProvenance, raw)
	}
}

func TestReduceTotalsDropsNulls(t *testing.T) {
	sum := ReduceNutrientReport([]byte(`{
		"micronutrient_totals": {"iron_mg": 4.5, "calcium_mg": null, "zinc_mg": 0}
	}`))

	assert.Equal(t, map[string]float64{"iron_mg": 4.5, "zinc_mg": 0}, sum.MicronutrientTotals)
}

func TestReducePercentDVBothShapes(t *testing.T) {
	sum := ReduceNutrientReport([]byte(`{
		"percent_dv_friendly": {
			"iron_mg":    {"pct": 25, "label": "whatever"},
			"calcium_mg": 8,
			"zinc_mg":    null
		}
	}`))

	iron := sum.PercentDV["iron_mg"]
	require.NotNil(t, iron.Pct)
	assert.Equal(t, 25.0, *iron.Pct)
	assert.Equal(t, "High", iron.Label)
	assert.Equal(t, utils.DVHigh, iron.Category)

	calcium := sum.PercentDV["calcium_mg"]
	require.NotNil(t, calcium.Pct)
	assert.Equal(t, 8.0, *calcium.Pct)
	assert.Equal(t, "Moderate", calcium.Label)

	zinc := sum.PercentDV["zinc_mg"]
	assert.Nil(t, zinc.Pct)
	assert.Equal(t, "No data", zinc.Label)
	assert.Equal(t, utils.DVUnknown, zinc.Category)
}

func TestReducePercentDVFallsBackToPlain(t *testing.T) {
	sum := ReduceNutrientReport([]byte(`{
		"percent_dv": {"sodium_mg": 120}
	}`))

	entry := sum.PercentDV["sodium_mg"]
	require.NotNil(t, entry.Pct)
	assert.Equal(t, 120.0, *entry.Pct)
	assert.Equal(t, "High", entry.Label)
}

func TestReducePercentDVNullFriendlyFallsBackToPlain(t *testing.T) {
	sum := ReduceNutrientReport([]byte(`{
		"percent_dv_friendly": null,
		"percent_dv": {"iron_mg": 30}
	}`))

	entry := sum.PercentDV["iron_mg"]
	require.NotNil(t, entry.Pct)
	assert.Equal(t, 30.0, *entry.Pct)
	assert.Equal(t, "High", entry.Label)

	// both sections null still degrades to empty, not an error
	sum = ReduceNutrientReport([]byte(`{
		"percent_dv_friendly": null,
		"percent_dv": null
	}`))
	assert.Empty(t, sum.PercentDV)
}

func TestReduceTopLackingBothShapes(t *testing.T) {
	sum := ReduceNutrientReport([]byte(`{
		"top_lacking": [
			{"nutrient": "vitamin_C_mg", "pct": 3},
			["iron_mg", 12.5],
			null,
			{"nutrient": "", "pct": 1},
			"garbage"
		]
	}`))

	require.Len(t, sum.TopLacking, 2)
	assert.Equal(t, utils.LackingNutrient{Nutrient: "vitamin_C_mg", Pct: 3}, sum.TopLacking[0])
	assert.Equal(t, utils.LackingNutrient{Nutrient: "iron_mg", Pct: 12.5}, sum.TopLacking[1])
}

func TestReduceTopLackingPreservesUpstreamOrder(t *testing.T) {
	sum := ReduceNutrientReport([]byte(`{
		"top_lacking": [
			{"nutrient": "b", "pct": 50},
			{"nutrient": "a", "pct": 10}
		]
	}`))

	// not re-sorted: ranking is the upstream's call
	require.Len(t, sum.TopLacking, 2)
	assert.Equal(t, "b", sum.TopLacking[0].Nutrient)
	assert.Equal(t, "a", sum.TopLacking[1].Nutrient)
}

func TestReduceProvenance(t *testing.T) {
	sum := ReduceNutrientReport([]byte(`{
		"per_item_provenance": [
			{
				"mapped_to": "Veg Biryani",
				"quantity": 2,
				"portion_mult": 0.5,
				"provenance": {"source": "fdc", "description": "BIRYANI, VEGETABLE", "fdcId": 12345}
			},
			{
				"raw": "Mystery Dish",
				"provenance": {"source": "heuristic"}
			},
			{
				"raw_text": "2x Smudged Line"
			}
		]
	}`))

	require.Len(t, sum.PerItemProvenance, 3)

	first := sum.PerItemProvenance[0]
	assert.Equal(t, "Veg Biryani", first.MappedTo)
	assert.Equal(t, "BIRYANI, VEGETABLE (FDC 12345)", first.SourceDescription)
	assert.Equal(t, "12345", first.SourceID)
	assert.Equal(t, 2.0, first.Quantity)
	assert.Equal(t, 0.5, first.PortionMult)

	second := sum.PerItemProvenance[1]
	assert.Equal(t, "Mystery Dish", second.MappedTo)
	assert.Equal(t, "heuristic", second.SourceDescription)
	assert.Equal(t, "heuristic", second.SourceID)
	assert.Equal(t, 1.0, second.PortionMult) // defaulted

	third := sum.PerItemProvenance[2]
	assert.Equal(t, "2x Smudged Line", third.MappedTo)
	assert.Equal(t, "", third.SourceDescription)
}

func TestDisplayTotals(t *testing.T) {
	out := DisplayTotals(map[string]float64{"dietary_fiber_g": 12})
	assert.Equal(t, map[string]float64{"dietary fiber g": 12}, out)
}

func TestCapTopLacking(t *testing.T) {
	long := make([]utils.LackingNutrient, 12)
	capped := CapTopLacking(long)
	assert.Len(t, capped, 8)

	short := make([]utils.LackingNutrient, 3)
	assert.Len(t, CapTopLacking(short), 3)
}
