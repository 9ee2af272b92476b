package services

import (
	"github.com/shivtchandra/food-analysis/utils"
)

// Candidate is a proposed food-reference match for one detected line.
type Candidate struct {
	DBItem string  `json:"db_item"`
	Score  float64 `json:"score"`
}

// RawDetection is one OCR-detected line as delivered by the detection
// provider (image scan, CSV import, ...). Every field beyond raw_text is
// optional; missing values are resolved at normalization time.
type RawDetection struct {
	RawText       string      `json:"raw_text"`
	ExtractedText string      `json:"extracted_text,omitempty"`
	Quantity      float64     `json:"quantity,omitempty"`
	PortionMult   float64     `json:"portion_mult,omitempty"`
	Candidates    []Candidate `json:"candidates"`
	ModelProb     *float64    `json:"model_prob,omitempty"`
}

// EditableItem is the canonical user-editable record for one food line.
type EditableItem struct {
	ID             int         `json:"id"`
	RawText        string      `json:"raw_text"`
	ExtractedText  string      `json:"extracted_text"`
	Quantity       float64     `json:"quantity"`
	PortionMult    float64     `json:"portion_mult"`
	Candidates     []Candidate `json:"candidates"`
	Selected       string      `json:"selected"`
	SelectedScore  float64     `json:"selected_score"`
	ManualCalories *float64    `json:"manual_calories"`
	ModelProb      *float64    `json:"model_prob,omitempty"`
}

// NormalizeDetections converts raw detections into editable items. It is a
// pure transformation: output length always equals input length, ids are
// the input positions, nothing is dropped. Callers that want filtering
// must pre-filter the input.
func NormalizeDetections(detections []RawDetection) []EditableItem {
	items := make([]EditableItem, 0, len(detections))
	for i, d := range detections {
		raw := d.RawText
		if raw == "" {
			raw = d.ExtractedText
		}
		parsedQty, parsed, parsedText := utils.ParseQuantityPrefix(raw)

		extracted := d.ExtractedText
		if extracted == "" {
			extracted = parsedText
		}
		if extracted == "" {
			extracted = raw
		}

		qty := d.Quantity
		if qty == 0 && parsed {
			qty = parsedQty
		}
		if qty == 0 {
			qty = 1
		}

		portion := d.PortionMult
		if portion == 0 {
			portion = 1
		}

		selected := extracted
		var score float64
		if len(d.Candidates) > 0 {
			selected = d.Candidates[0].DBItem
			score = d.Candidates[0].Score
		}

		items = append(items, EditableItem{
			ID:            i,
			RawText:       d.RawText,
			ExtractedText: extracted,
			Quantity:      qty,
			PortionMult:   portion,
			Candidates:    d.Candidates,
			Selected:      selected,
			SelectedScore: score,
			ModelProb:     d.ModelProb,
		})
	}
	return items
}

// OCRLine is one text line with the provider's confidence in [0,100].
type OCRLine struct {
	Text       string
	Confidence float64
}

type DetectionService struct {
	index *FoodIndex
}

func NewDetectionService(index *FoodIndex) *DetectionService {
	return &DetectionService{index: index}
}

const maxCandidates = 5

// BuildDetections turns raw OCR lines into detection records: the quantity
// hint comes from the prefix parser, candidates from the local food index,
// model_prob from the OCR confidence. Blank lines are skipped here; this
// is the one place pre-filtering happens.
func (s *DetectionService) BuildDetections(lines []OCRLine) []RawDetection {
	out := make([]RawDetection, 0, len(lines))
	for _, line := range lines {
		_, _, text := utils.ParseQuantityPrefix(line.Text)
		if text == "" {
			continue
		}

		var candidates []Candidate
		for _, m := range s.index.TopMatches(text, maxCandidates) {
			candidates = append(candidates, Candidate{
				DBItem: m.Name,
				Score:  float64(m.Score) / 100,
			})
		}

		d := RawDetection{
			RawText:       line.Text,
			ExtractedText: text,
			Candidates:    candidates,
		}
		if line.Confidence > 0 {
			prob := line.Confidence / 100
			d.ModelProb = &prob
		}
		out = append(out, d)
	}
	return out
}
