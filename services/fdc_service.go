package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/shivtchandra/food-analysis/models"

	"gorm.io/gorm"
)

const (
	fdcSearchURL = "https://api.nal.usda.gov/fdc/v1/foods/search"
	fdcFoodURL   = "https://api.nal.usda.gov/fdc/v1/food/%v"
)

// FDCService talks to USDA FoodData Central. Lookups are memoized in the
// fdc_caches table keyed by the normalized query.
type FDCService struct {
	apiKey string
	client *http.Client
	db     *gorm.DB
}

func NewFDCService(db *gorm.DB) *FDCService {
	return &FDCService{
		apiKey: os.Getenv("FDC_API_KEY"),
		client: &http.Client{Timeout: 10 * time.Second},
		db:     db,
	}
}

// Enabled reports whether an API key is configured; without one every
// lookup degrades to (nil, provenance) rather than failing the pipeline.
func (s *FDCService) Enabled() bool { return s.apiKey != "" }

// FDCProvenance records where a nutrient profile came from.
type FDCProvenance struct {
	Source                   string  `json:"source"`
	FdcID                    int64   `json:"fdcId,omitempty"`
	Description              string  `json:"description,omitempty"`
	ServingSize              float64 `json:"servingSize,omitempty"`
	ServingSizeUnit          string  `json:"servingSizeUnit,omitempty"`
	HouseholdServingFullText string  `json:"householdServingFullText,omitempty"`
}

type fdcSearchResponse struct {
	Foods []struct {
		FdcID       int64  `json:"fdcId"`
		Description string `json:"description"`
	} `json:"foods"`
}

type fdcFoodDetail struct {
	FoodNutrients []struct {
		Nutrient struct {
			Name     string `json:"name"`
			UnitName string `json:"unitName"`
		} `json:"nutrient"`
		NutrientName string   `json:"nutrientName"`
		Name         string   `json:"name"`
		Amount       *float64 `json:"amount"`
		Value        *float64 `json:"value"`
		UnitName     string   `json:"unitName"`
	} `json:"foodNutrients"`
	LabelNutrients map[string]struct {
		Value *float64 `json:"value"`
	} `json:"labelNutrients"`
	ServingSize              float64 `json:"servingSize"`
	ServingSizeUnit          string  `json:"servingSizeUnit"`
	HouseholdServingFullText string  `json:"householdServingFullText"`
}

// FDC nutrient name -> (snake key, expected unit)
var fdcNutrientMapping = map[string]struct {
	Key  string
	Unit string
}{
	"Energy":                          {"calories_kcal", "kcal"},
	"Energy (kcal)":                   {"calories_kcal", "kcal"},
	"Protein":                         {"protein_g", "g"},
	"Total lipid (fat)":               {"total_fat_g", "g"},
	"Fat":                             {"total_fat_g", "g"},
	"Fatty acids, total saturated":    {"saturated_fat_g", "g"},
	"Carbohydrate, by difference":     {"total_carbohydrate_g", "g"},
	"Carbohydrate":                    {"total_carbohydrate_g", "g"},
	"Fiber, total dietary":            {"dietary_fiber_g", "g"},
	"Sugars, total including NLEA":    {"sugars_g", "g"},
	"Sugars, total":                   {"sugars_g", "g"},
	"Calcium, Ca":                     {"calcium_mg", "mg"},
	"Iron, Fe":                        {"iron_mg", "mg"},
	"Magnesium, Mg":                   {"magnesium_mg", "mg"},
	"Phosphorus, P":                   {"phosphorus_mg", "mg"},
	"Potassium, K":                    {"potassium_mg", "mg"},
	"Sodium, Na":                      {"sodium_mg", "mg"},
	"Zinc, Zn":                        {"zinc_mg", "mg"},
	"Selenium, Se":                    {"selenium_mcg", "mcg"},
	"Vitamin C, total ascorbic acid":  {"vitamin_C_mg", "mg"},
	"Vitamin D (D2 + D3)":             {"vitamin_D_mcg", "mcg"},
	"Vitamin A, RAE":                  {"vitamin_A_mcg_RAE", "mcg"},
	"Vitamin E (alpha-tocopherol)":    {"vitamin_E_mg", "mg"},
	"Vitamin K (phylloquinone)":       {"vitamin_K_mcg", "mcg"},
	"Thiamin":                         {"thiamin_mg", "mg"},
	"Riboflavin":                      {"riboflavin_mg", "mg"},
	"Niacin":                          {"niacin_mg_NE", "mg"},
	"Vitamin B-6":                     {"vitamin_B6_mg", "mg"},
	"Folate, total":                   {"folate_mcg_DFE", "mcg"},
	"Folate, DFE":                     {"folate_mcg_DFE", "mcg"},
	"Vitamin B-12":                    {"vitamin_B12_mcg", "mcg"},
	"Biotin":                          {"biotin_mcg", "mcg"},
	"Pantothenic acid":                {"pantothenic_acid_mg", "mg"},
	"Cholesterol":                     {"cholesterol_mg", "mg"},
	"Cholesterol, total":              {"cholesterol_mg", "mg"},
}

var fdcLabelMapping = map[string]string{
	"calories":      "calories_kcal",
	"protein":       "protein_g",
	"fat":           "total_fat_g",
	"saturatedFat":  "saturated_fat_g",
	"transFat":      "trans_fat_g",
	"cholesterol":   "cholesterol_mg",
	"sodium":        "sodium_mg",
	"carbohydrates": "total_carbohydrate_g",
	"fiber":         "dietary_fiber_g",
	"sugars":        "sugars_g",
	"calcium":       "calcium_mg",
	"iron":          "iron_mg",
}

// LookupNutrients resolves a food name to a nutrient profile. A nil map
// with a populated provenance means the lookup found nothing usable; the
// caller is expected to fall through to its next source.
func (s *FDCService) LookupNutrients(query string) (models.NutrientMap, FDCProvenance) {
	key := strings.ToLower(strings.TrimSpace(query))

	var cached models.FDCCache
	if s.db != nil && s.db.Where("query = ?", key).First(&cached).Error == nil {
		var prov FDCProvenance
		_ = json.Unmarshal([]byte(cached.Provenance), &prov)
		return cached.Nutrients, prov
	}

	if !s.Enabled() {
		return nil, FDCProvenance{Source: "fdc_disabled"}
	}

	search, err := s.search(key, 5)
	if err != nil || search == nil || len(search.Foods) == 0 {
		if err != nil {
			return nil, FDCProvenance{Source: "fdc_search_failed"}
		}
		return nil, FDCProvenance{Source: "no_results"}
	}

	chosen := search.Foods[0]
	detail, err := s.foodDetail(chosen.FdcID)
	if err != nil || detail == nil {
		return nil, FDCProvenance{Source: "fdc_detail_failed", FdcID: chosen.FdcID}
	}

	nutrients := extractFDCNutrients(detail)
	prov := FDCProvenance{
		Source:                   "fdc",
		FdcID:                    chosen.FdcID,
		Description:              chosen.Description,
		ServingSize:              detail.ServingSize,
		ServingSizeUnit:          detail.ServingSizeUnit,
		HouseholdServingFullText: detail.HouseholdServingFullText,
	}

	if s.db != nil {
		provJSON, _ := json.Marshal(prov)
		s.db.Create(&models.FDCCache{Query: key, Nutrients: nutrients, Provenance: string(provJSON)})
	}
	return nutrients, prov
}

func (s *FDCService) search(query string, pageSize int) (*fdcSearchResponse, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("pageSize", fmt.Sprint(pageSize))
	var out fdcSearchResponse
	if err := s.getJSON(fdcSearchURL, q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FDCService) foodDetail(fdcID int64) (*fdcFoodDetail, error) {
	var out fdcFoodDetail
	if err := s.getJSON(fmt.Sprintf(fdcFoodURL, fdcID), url.Values{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// getJSON performs a GET with up to three attempts, backing off on server
// errors and giving up immediately on client errors.
func (s *FDCService) getJSON(base string, params url.Values, out interface{}) error {
	params.Set("api_key", s.apiKey)
	u := base + "?" + params.Encode()

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
		resp, err := s.client.Get(u)
		if err != nil {
			lastErr = fmt.Errorf("fdc request failed: %w", err)
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read FDC response: %w", err)
			continue
		}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return fmt.Errorf("fdc client error %d: %s", resp.StatusCode, string(body))
		}
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("fdc server error %d", resp.StatusCode)
			continue
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to parse FDC JSON: %w", err)
		}
		return nil
	}
	if lastErr == nil {
		lastErr = errors.New("fdc lookup exhausted retries")
	}
	return lastErr
}

// extractFDCNutrients flattens a food detail into snake-keyed amounts,
// converting units where the FDC unit differs from the expected one. The
// labelNutrients block is the fallback for branded items that carry no
// foodNutrients.
func extractFDCNutrients(detail *fdcFoodDetail) models.NutrientMap {
	out := models.NutrientMap{}

	for _, comp := range detail.FoodNutrients {
		name := comp.Nutrient.Name
		if name == "" {
			name = comp.NutrientName
		}
		if name == "" {
			name = comp.Name
		}
		amount := comp.Amount
		if amount == nil {
			amount = comp.Value
		}
		if name == "" || amount == nil {
			continue
		}
		mapped, ok := fdcNutrientMapping[name]
		if !ok {
			continue
		}
		unit := comp.Nutrient.UnitName
		if unit == "" {
			unit = comp.UnitName
		}
		out[mapped.Key] = convertUnit(*amount, unit, mapped.Unit)
	}

	if len(out) == 0 {
		for label, v := range detail.LabelNutrients {
			key, ok := fdcLabelMapping[label]
			if !ok || v.Value == nil {
				continue
			}
			out[key] = *v.Value
		}
	}
	return out
}

func convertUnit(value float64, from, to string) float64 {
	from = strings.ToLower(from)
	to = strings.ToLower(to)
	if from == "μg" {
		from = "mcg"
	}
	switch {
	case from == to:
		return value
	case from == "mcg" && to == "mg":
		return value / 1000
	case from == "mg" && to == "mcg":
		return value * 1000
	case from == "g" && to == "mg":
		return value * 1000
	case from == "mg" && to == "g":
		return value / 1000
	}
	return value
}
