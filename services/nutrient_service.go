package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/shivtchandra/food-analysis/models"
	"github.com/shivtchandra/food-analysis/utils"
)

// SourceRef is the per-line provenance record the computation emits.
type SourceRef struct {
	Source      string  `json:"source"`
	Score       int     `json:"score,omitempty"`
	FdcID       int64   `json:"fdcId,omitempty"`
	Description string  `json:"description,omitempty"`
	ServingSize float64 `json:"servingSize,omitempty"`
}

// ItemResult is one computed line of a nutrient response.
type ItemResult struct {
	ID          string             `json:"id"`
	MappedTo    string             `json:"mapped_to"`
	Raw         string             `json:"raw"`
	Quantity    float64            `json:"quantity"`
	PortionMult float64            `json:"portion_mult"`
	Macros      map[string]float64 `json:"macros"`
	Calories    float64            `json:"calories"`
	Provenance  SourceRef          `json:"provenance"`
}

// MacroTotals is the rounded headline block of a response.
type MacroTotals struct {
	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFat      float64 `json:"total_fat"`
}

// FriendlyDV is a pre-classified %DV entry.
type FriendlyDV struct {
	Pct      float64          `json:"pct"`
	Label    string           `json:"label"`
	Category utils.DVCategory `json:"category"`
}

// NutrientResponse is the full computation result for one confirmation.
// Its JSON shape is what NutrientSummaryReducer consumes.
type NutrientResponse struct {
	PerItemProvenance   []ItemResult            `json:"per_item_provenance"`
	Totals              map[string]float64      `json:"totals"`
	Macros              MacroTotals             `json:"macros"`
	MicronutrientTotals map[string]float64      `json:"micronutrient_totals"`
	PercentDVFriendly   map[string]FriendlyDV   `json:"percent_dv_friendly"`
	TopLacking          []utils.LackingNutrient `json:"top_lacking"`
}

// NutrientService resolves confirmed lines to nutrient profiles. Sources
// are tried in a fixed order: local food reference, FoodData Central, LLM
// estimate, and finally a name-based heuristic so a line never comes back
// without numbers.
type NutrientService struct {
	index *FoodIndex
	fdc   *FDCService
	llm   *GeminiEstimator
}

func NewNutrientService(index *FoodIndex, fdc *FDCService, llm *GeminiEstimator) *NutrientService {
	return &NutrientService{index: index, fdc: fdc, llm: llm}
}

const (
	localMatchThreshold = 40
	goodMatchThreshold  = 75
)

var macroKeys = map[string]bool{
	"calories_kcal":        true,
	"protein_g":            true,
	"total_carbohydrate_g": true,
	"total_fat_g":          true,
}

// Compute runs the full nutrient computation for a confirmation payload.
func (s *NutrientService) Compute(ctx context.Context, lines []ConfirmedLine) NutrientResponse {
	resp := NutrientResponse{
		PerItemProvenance:   make([]ItemResult, 0, len(lines)),
		Totals:              map[string]float64{},
		MicronutrientTotals: map[string]float64{},
		PercentDVFriendly:   map[string]FriendlyDV{},
	}

	for i, line := range lines {
		name := strings.TrimSpace(line.Item)
		if name == "" {
			continue
		}

		base, prov := s.resolve(ctx, name)
		scaled := scaleNutrients(base, line.Quantity)

		if line.Calories != nil {
			// manual override replaces the computed calorie estimate
			scaled["calories_kcal"] = *line.Calories
			prov.Source = prov.Source + "+manual_calories"
		}

		for k, v := range scaled {
			resp.Totals[k] += v
		}

		resp.PerItemProvenance = append(resp.PerItemProvenance, ItemResult{
			ID:          itemID(i),
			MappedTo:    name,
			Raw:         name,
			Quantity:    line.Quantity,
			PortionMult: line.PortionMult,
			Macros:      scaled,
			Calories:    scaled["calories_kcal"],
			Provenance:  prov,
		})
	}

	resp.Macros = MacroTotals{
		TotalCalories: round1(resp.Totals["calories_kcal"]),
		TotalProtein:  round1(resp.Totals["protein_g"]),
		TotalCarbs:    round1(resp.Totals["total_carbohydrate_g"]),
		TotalFat:      round1(resp.Totals["total_fat_g"]),
	}

	for k, v := range resp.Totals {
		if !macroKeys[k] {
			resp.MicronutrientTotals[k] = v
		}
		if pct, ok := utils.PercentDV(k, v); ok {
			class := utils.ClassifyDV(&pct)
			resp.PercentDVFriendly[k] = FriendlyDV{Pct: pct, Label: class.Label, Category: class.Category}
		}
	}
	resp.TopLacking = utils.RankLacking(resp.Totals)

	return resp
}

// resolve finds a base (single-serving) nutrient profile for a name.
func (s *NutrientService) resolve(ctx context.Context, name string) (models.NutrientMap, SourceRef) {
	if s.index != nil {
		if m := s.index.Match(name, localMatchThreshold); m != nil {
			source := "local_cache"
			if m.Score < goodMatchThreshold {
				source = "closest_match"
			}
			return m.Nutrients, SourceRef{Source: source, Score: m.Score, Description: m.Name}
		}
	}

	if s.fdc != nil {
		nutrients, prov := s.fdc.LookupNutrients(name)
		if len(nutrients) > 0 {
			return nutrients, SourceRef{
				Source:      prov.Source,
				FdcID:       prov.FdcID,
				Description: prov.Description,
				ServingSize: prov.ServingSize,
			}
		}
	}

	if s.llm != nil && s.llm.Enabled() {
		est, err := s.llm.EstimateMacros(ctx, name)
		if err == nil && len(est) > 0 {
			return est, SourceRef{Source: "llm_fallback"}
		}
		if err != nil {
			log.Printf("llm estimate failed for %q: %v", name, err)
		}
	}

	return heuristicEstimate(name), SourceRef{Source: "heuristic"}
}

// heuristicEstimate is the last-resort profile: a base calorie figure by
// dish keyword with a 12/45/43 protein/carb/fat calorie split.
func heuristicEstimate(name string) models.NutrientMap {
	base := 350.0
	low := strings.ToLower(name)
	switch {
	case strings.Contains(low, "salad"):
		base = 220
	case strings.Contains(low, "biryani"):
		base = 420
	case strings.Contains(low, "pizza"):
		base = 700
	case strings.Contains(low, "paneer"):
		base = 450
	}
	return models.NutrientMap{
		"calories_kcal":        base,
		"protein_g":            base * 0.12 / 4,
		"total_carbohydrate_g": base * 0.45 / 4,
		"total_fat_g":          base * 0.43 / 9,
	}
}

func scaleNutrients(base models.NutrientMap, mult float64) map[string]float64 {
	if mult <= 0 {
		mult = 1
	}
	out := make(map[string]float64, len(base))
	for k, v := range base {
		out[k] = v * mult
	}
	return out
}

func itemID(i int) string {
	return fmt.Sprintf("item-%d", i)
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
