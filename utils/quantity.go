package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// OCR engines emit a handful of multiplication glyphs for the "2x" marker.
var multiplySigns = strings.NewReplacer(
	"×", "x", // ×
	"✕", "x", // ✕
	"✖", "x", // ✖
	"⨯", "x", // ⨯
	"ｘ", "x", // ｘ
)

var (
	spaceRuns = regexp.MustCompile(`\s+`)

	// "1x Paneer Pizza", "2 X Burger", "3. Fries", "4) Salad"
	qtySeparator = regexp.MustCompile(`^(\d+)\s*[xX.\-:)]\s*(.*)$`)
	// looser "7 Up" style: count, whitespace, remainder
	qtySpace = regexp.MustCompile(`^(\d+)\s+(\S.*)$`)
)

// NormalizeLine collapses whitespace, trims, and folds multiplication
// glyph variants to a plain "x".
func NormalizeLine(raw string) string {
	s := multiplySigns.Replace(raw)
	s = spaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ParseQuantityPrefix extracts a leading count marker from a raw OCR line.
// It never fails: ambiguous input yields ok=false with the normalized line
// as text, and the text is never empty when the input had any content
// (a bare "3x" falls back to the whole normalized line).
func ParseQuantityPrefix(raw string) (qty float64, ok bool, text string) {
	norm := NormalizeLine(raw)
	if norm == "" {
		return 0, false, ""
	}

	if m := qtySeparator.FindStringSubmatch(norm); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			rest := strings.TrimSpace(m[2])
			if rest == "" {
				rest = norm
			}
			return float64(n), true, rest
		}
	}

	if m := qtySpace.FindStringSubmatch(norm); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return float64(n), true, strings.TrimSpace(m[2])
		}
	}

	return 0, false, norm
}
