package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/shivtchandra/food-analysis/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiEstimator asks an LLM for a rough macro profile when neither the
// local reference nor FDC knows the food. Optional: without an API key it
// stays disabled and callers fall through to the heuristic estimate.
type GeminiEstimator struct {
	apiKey string
	model  string
}

func NewGeminiEstimator() *GeminiEstimator {
	model := strings.TrimSpace(os.Getenv("GEMINI_MODEL"))
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiEstimator{
		apiKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		model:  model,
	}
}

func (g *GeminiEstimator) Enabled() bool { return g.apiKey != "" }

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// EstimateMacros returns a per-serving nutrient map for the named food.
func (g *GeminiEstimator) EstimateMacros(ctx context.Context, name string) (models.NutrientMap, error) {
	if !g.Enabled() {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, err
	}
	defer cl.Close()

	m := cl.GenerativeModel(g.model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}

	prompt := fmt.Sprintf(
		"Estimate calories and macros for one serving of: %s\n"+
			"Return JSON: {\"calories\": number, \"protein\": number, \"carbs\": number, \"fats\": number}",
		name,
	)

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := m.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
			continue
		}
		return parseMacroEstimate(firstText(resp))
	}
	return nil, lastErr
}

// parseMacroEstimate decodes the model's JSON reply, tolerating prose
// around the object. Models occasionally return negatives; every field is
// clamped to zero.
func parseMacroEstimate(txt string) (models.NutrientMap, error) {
	if match := jsonObjectPattern.FindString(txt); match != "" {
		txt = match
	}
	var parsed struct {
		Calories float64 `json:"calories"`
		Protein  float64 `json:"protein"`
		Carbs    float64 `json:"carbs"`
		Fats     float64 `json:"fats"`
	}
	if err := json.Unmarshal([]byte(txt), &parsed); err != nil {
		return nil, fmt.Errorf("gemini estimate: bad JSON: %w", err)
	}
	return models.NutrientMap{
		"calories_kcal":        clampNonNegative(parsed.Calories),
		"protein_g":            clampNonNegative(parsed.Protein),
		"total_carbohydrate_g": clampNonNegative(parsed.Carbs),
		"total_fat_g":          clampNonNegative(parsed.Fats),
	}, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return strings.TrimSpace(string(t))
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
