package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shivtchandra/food-analysis/utils"
)

// NutrientReport is the wire shape of a nutrient-computation response.
// Every section is optional; the upstream service is allowed to omit any
// of them (an FDC lookup failure drops whole sections), so fields stay
// raw until reduction.
type NutrientReport struct {
	MicronutrientTotals json.RawMessage `json:"micronutrient_totals,omitempty"`
	PercentDVFriendly   json.RawMessage `json:"percent_dv_friendly,omitempty"`
	PercentDV           json.RawMessage `json:"percent_dv,omitempty"`
	TopLacking          json.RawMessage `json:"top_lacking,omitempty"`
	PerItemProvenance   json.RawMessage `json:"per_item_provenance,omitempty"`

	Totals json.RawMessage `json:"totals,omitempty"`
	Macros json.RawMessage `json:"macros,omitempty"`
}

// DVEntry is one nutrient's classified %DV for display.
type DVEntry struct {
	Pct      *float64         `json:"pct"`
	Label    string           `json:"label"`
	Category utils.DVCategory `json:"category"`
}

// ItemProvenance records which reference item one confirmed line resolved
// to, for audit.
type ItemProvenance struct {
	MappedTo          string  `json:"mapped_to"`
	SourceDescription string  `json:"source_description"`
	SourceID          string  `json:"source_id"`
	Quantity          float64 `json:"quantity"`
	PortionMult       float64 `json:"portion_mult"`
}

// NutrientSummary is the reduced, display-ready aggregation result. It is
// immutable once produced; a new confirmation replaces it wholesale.
type NutrientSummary struct {
	MicronutrientTotals map[string]float64      `json:"micronutrient_totals"`
	PercentDV           map[string]DVEntry      `json:"percent_dv"`
	TopLacking          []utils.LackingNutrient `json:"top_lacking"`
	PerItemProvenance   []ItemProvenance        `json:"per_item_provenance"`
}

// ReduceNutrientReport reduces a raw response body. It is total: malformed
// or partial input degrades to empty sections, never an error.
func ReduceNutrientReport(raw []byte) NutrientSummary {
	var report NutrientReport
	// a non-object body just leaves every section empty
	_ = json.Unmarshal(raw, &report)
	return Reduce(report)
}

// Reduce assembles the summary from an already-decoded report.
func Reduce(report NutrientReport) NutrientSummary {
	return NutrientSummary{
		MicronutrientTotals: reduceTotals(report.MicronutrientTotals),
		PercentDV:           reducePercentDV(report.PercentDVFriendly, report.PercentDV),
		TopLacking:          reduceTopLacking(report.TopLacking),
		PerItemProvenance:   reduceProvenance(report.PerItemProvenance),
	}
}

func reduceTotals(raw json.RawMessage) map[string]float64 {
	out := map[string]float64{}
	if len(raw) == 0 {
		return out
	}
	var m map[string]*float64
	if err := json.Unmarshal(raw, &m); err != nil {
		return out
	}
	for k, v := range m {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}

// reducePercentDV prefers the pre-classified "friendly" table and falls
// back to the raw numeric one. Entries come in two shapes, a bare number
// or a record carrying pct, both resolved by resolvePct.
func reducePercentDV(friendly, plain json.RawMessage) map[string]DVEntry {
	out := map[string]DVEntry{}
	src := friendly
	if len(src) == 0 || string(src) == "null" {
		src = plain
	}
	if len(src) == 0 || string(src) == "null" {
		return out
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(src, &entries); err != nil {
		return out
	}
	for name, raw := range entries {
		pct := resolvePct(raw)
		class := utils.ClassifyDV(pct)
		out[name] = DVEntry{Pct: pct, Label: class.Label, Category: class.Category}
	}
	return out
}

// resolvePct extracts a percent from either entry shape, nil if neither
// matches.
func resolvePct(raw json.RawMessage) *float64 {
	// json.Unmarshal treats null as a no-op success, so screen it out first
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}
	var rec struct {
		Pct *float64 `json:"pct"`
	}
	if err := json.Unmarshal(raw, &rec); err == nil {
		return rec.Pct
	}
	return nil
}

// reduceTopLacking passes the upstream ranking through verbatim, skipping
// null or malformed pair entries. Ranking is the upstream's job; nothing
// is recomputed here.
func reduceTopLacking(raw json.RawMessage) []utils.LackingNutrient {
	out := []utils.LackingNutrient{}
	if len(raw) == 0 {
		return out
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return out
	}
	for _, e := range entries {
		if ln, ok := resolveLackingPair(e); ok {
			out = append(out, ln)
		}
	}
	return out
}

// resolveLackingPair accepts {nutrient, pct} records and ["name", pct]
// tuples, the two shapes upstreams have been seen to emit.
func resolveLackingPair(raw json.RawMessage) (utils.LackingNutrient, bool) {
	var rec struct {
		Nutrient string   `json:"nutrient"`
		Pct      *float64 `json:"pct"`
	}
	if err := json.Unmarshal(raw, &rec); err == nil && rec.Nutrient != "" && rec.Pct != nil {
		return utils.LackingNutrient{Nutrient: rec.Nutrient, Pct: *rec.Pct}, true
	}
	var tuple []json.RawMessage
	if err := json.Unmarshal(raw, &tuple); err == nil && len(tuple) >= 2 {
		var name string
		var pct float64
		if json.Unmarshal(tuple[0], &name) == nil && name != "" &&
			json.Unmarshal(tuple[1], &pct) == nil {
			return utils.LackingNutrient{Nutrient: name, Pct: pct}, true
		}
	}
	return utils.LackingNutrient{}, false
}

type perItemRecord struct {
	MappedTo    string          `json:"mapped_to"`
	Raw         string          `json:"raw"`
	RawText     string          `json:"raw_text"`
	Quantity    *float64        `json:"quantity"`
	PortionMult *float64        `json:"portion_mult"`
	Provenance  json.RawMessage `json:"provenance"`
}

func reduceProvenance(raw json.RawMessage) []ItemProvenance {
	out := []ItemProvenance{}
	if len(raw) == 0 {
		return out
	}
	var records []perItemRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return out
	}
	for _, r := range records {
		p := ItemProvenance{MappedTo: resolveItemName(r)}
		p.SourceDescription, p.SourceID = resolveSource(r.Provenance)
		if r.Quantity != nil {
			p.Quantity = *r.Quantity
		}
		if r.PortionMult != nil {
			p.PortionMult = *r.PortionMult
		} else {
			p.PortionMult = 1
		}
		out = append(out, p)
	}
	return out
}

// resolveItemName applies the mapped_to, raw, raw_text precedence.
func resolveItemName(r perItemRecord) string {
	if r.MappedTo != "" {
		return r.MappedTo
	}
	if r.Raw != "" {
		return r.Raw
	}
	return r.RawText
}

// resolveSource extracts description and id from the per-item provenance
// object when it has the expected shape, else dumps whatever was there.
func resolveSource(raw json.RawMessage) (desc, id string) {
	if len(raw) == 0 {
		return "", ""
	}
	var p struct {
		Source      string      `json:"source"`
		Description string      `json:"description"`
		FdcID       json.Number `json:"fdcId"`
	}
	if err := json.Unmarshal(raw, &p); err == nil {
		id = p.FdcID.String()
		if id == "" {
			id = p.Source
		}
		if p.Description != "" {
			if p.FdcID.String() != "" {
				return fmt.Sprintf("%s (FDC %s)", p.Description, p.FdcID), id
			}
			return p.Description, id
		}
		if p.Source != "" {
			return p.Source, id
		}
	}
	return strings.TrimSpace(string(raw)), id
}

// DisplayTotals normalizes nutrient keys for presentation (underscores
// become spaces); stored keys stay untouched.
func DisplayTotals(totals map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(totals))
	for k, v := range totals {
		out[utils.DisplayNutrientName(k)] = v
	}
	return out
}

const topLackingDisplayCap = 8

// CapTopLacking bounds the lacking list for display; the stored list
// itself is unbounded.
func CapTopLacking(list []utils.LackingNutrient) []utils.LackingNutrient {
	if len(list) > topLackingDisplayCap {
		return list[:topLackingDisplayCap]
	}
	return list
}
