package utils

import (
	"math"
	"sort"
	"strings"
)

// DVCategory buckets a percent-of-daily-value figure for display.
type DVCategory string

const (
	DVHigh     DVCategory = "high"
	DVModerate DVCategory = "moderate"
	DVLow      DVCategory = "low"
	DVUnknown  DVCategory = "unknown"
)

// DVClass is the display record for one nutrient's %DV.
type DVClass struct {
	Label    string     `json:"label"`
	Category DVCategory `json:"category"`
}

// FDA Daily Values used for percent calculations. Units are encoded in the
// key names (g = grams, mg = milligrams, mcg = micrograms).
var FDADailyValues = map[string]float64{
	"total_fat_g":          78,
	"saturated_fat_g":      20,
	"cholesterol_mg":       300,
	"sodium_mg":            2300,
	"total_carbohydrate_g": 275,
	"dietary_fiber_g":      28,
	"added_sugars_g":       50,
	"protein_g":            50,
	"vitamin_D_mcg":        20,
	"calcium_mg":           1300,
	"iron_mg":              18,
	"potassium_mg":         4700,
	"vitamin_A_mcg_RAE":    900,
	"vitamin_C_mg":         90,
	"vitamin_E_mg":         15,
	"vitamin_K_mcg":        120,
	"thiamin_mg":           1.2,
	"riboflavin_mg":        1.3,
	"niacin_mg_NE":         16,
	"vitamin_B6_mg":        1.7,
	"folate_mcg_DFE":       400,
	"vitamin_B12_mcg":      2.4,
	"biotin_mcg":           30,
	"pantothenic_acid_mg":  5,
	"magnesium_mg":         420,
	"zinc_mg":              11,
	"selenium_mcg":         55,
}

// ClassifyDV maps a %DV figure to its tri-level category. 20 and 5 are the
// FDA labeling convention boundaries: >=20 is High, 5–20 Moderate, <5 Low.
// A nil percent means the nutrient was not reported.
func ClassifyDV(pct *float64) DVClass {
	switch {
	case pct == nil:
		return DVClass{Label: "No data", Category: DVUnknown}
	case *pct >= 20:
		return DVClass{Label: "High", Category: DVHigh}
	case *pct >= 5:
		return DVClass{Label: "Moderate", Category: DVModerate}
	default:
		return DVClass{Label: "Low", Category: DVLow}
	}
}

// PercentDV returns amount as a percent of the FDA daily value for key.
// The second return is false when the nutrient has no published DV.
func PercentDV(key string, amount float64) (float64, bool) {
	dv, ok := FDADailyValues[key]
	if !ok || dv <= 0 {
		return 0, false
	}
	return round1(amount / dv * 100), true
}

// LackingNutrient is one entry of the ranked "furthest below 100% DV" list.
type LackingNutrient struct {
	Nutrient string  `json:"nutrient"`
	Pct      float64 `json:"pct"`
}

// RankLacking builds the ascending-by-percent list of nutrients with a
// published DV that sit below 100% in the given totals. Nutrients absent
// from totals are treated as 0% consumed.
func RankLacking(totals map[string]float64) []LackingNutrient {
	out := make([]LackingNutrient, 0, len(FDADailyValues))
	for key := range FDADailyValues {
		pct, _ := PercentDV(key, totals[key])
		if pct < 100 {
			out = append(out, LackingNutrient{Nutrient: key, Pct: pct})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Pct != out[j].Pct {
			return out[i].Pct < out[j].Pct
		}
		return out[i].Nutrient < out[j].Nutrient
	})
	return out
}

// DisplayNutrientName turns a snake_case nutrient key into its display form.
func DisplayNutrientName(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
