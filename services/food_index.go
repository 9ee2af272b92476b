package services

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shivtchandra/food-analysis/models"

	"gorm.io/gorm"
)

var foodNamePattern = regexp.MustCompile(`[^a-z0-9 ]+`)

// NormalizeFoodName lowercases and strips everything outside [a-z0-9 ].
func NormalizeFoodName(s string) string {
	return strings.TrimSpace(foodNamePattern.ReplaceAllString(strings.ToLower(s), ""))
}

// FoodMatch is one scored hit against the local food reference.
type FoodMatch struct {
	Name      string
	Score     int // 0..100
	Nutrients models.NutrientMap
	Tags      string
}

type indexedFood struct {
	name      string
	norm      string
	nutrients models.NutrientMap
	tags      string
}

// FoodIndex is the in-memory view of the food reference table used for
// candidate matching. It is read-only after construction.
type FoodIndex struct {
	entries []indexedFood
}

func NewFoodIndex(entries []models.FoodEntry) *FoodIndex {
	ix := &FoodIndex{entries: make([]indexedFood, 0, len(entries))}
	for _, e := range entries {
		norm := e.Norm
		if norm == "" {
			norm = NormalizeFoodName(e.Name)
		}
		if norm == "" {
			continue
		}
		ix.entries = append(ix.entries, indexedFood{
			name:      e.Name,
			norm:      norm,
			nutrients: e.Nutrients,
			tags:      e.Tags,
		})
	}
	return ix
}

func LoadFoodIndex(db *gorm.DB) (*FoodIndex, error) {
	var entries []models.FoodEntry
	if err := db.Find(&entries).Error; err != nil {
		return nil, err
	}
	return NewFoodIndex(entries), nil
}

func (ix *FoodIndex) Len() int { return len(ix.entries) }

// score rates query vs entry: exact 100, substring either way 85, else a
// token-overlap ratio. Mirrors the reference search's tiered passes.
func score(q, norm string) int {
	if q == norm {
		return 100
	}
	if strings.Contains(norm, q) || strings.Contains(q, norm) {
		return 85
	}
	return tokenOverlap(q, norm)
}

func tokenOverlap(a, b string) int {
	at := strings.Fields(a)
	bt := strings.Fields(b)
	if len(at) == 0 || len(bt) == 0 {
		return 0
	}
	set := make(map[string]bool, len(at))
	for _, t := range at {
		set[t] = true
	}
	common := 0
	seen := make(map[string]bool, len(bt))
	for _, t := range bt {
		if set[t] && !seen[t] {
			common++
			seen[t] = true
		}
	}
	return common * 200 / (len(at) + len(bt))
}

// Match returns the best entry at or above minScore, or nil.
func (ix *FoodIndex) Match(name string, minScore int) *FoodMatch {
	q := NormalizeFoodName(name)
	if q == "" || len(ix.entries) == 0 {
		return nil
	}
	var best *FoodMatch
	for _, e := range ix.entries {
		sc := score(q, e.norm)
		if best == nil || sc > best.Score {
			best = &FoodMatch{Name: e.name, Score: sc, Nutrients: e.nutrients, Tags: e.tags}
		}
	}
	if best != nil && best.Score >= minScore {
		return best
	}
	return nil
}

// TopMatches returns up to limit entries with a nonzero score, best first.
func (ix *FoodIndex) TopMatches(name string, limit int) []FoodMatch {
	q := NormalizeFoodName(name)
	if q == "" || limit <= 0 {
		return nil
	}
	matches := make([]FoodMatch, 0, len(ix.entries))
	for _, e := range ix.entries {
		if sc := score(q, e.norm); sc > 0 {
			matches = append(matches, FoodMatch{Name: e.name, Score: sc, Nutrients: e.nutrients, Tags: e.tags})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
