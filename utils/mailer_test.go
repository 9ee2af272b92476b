package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDailySummaryBody(t *testing.T) {
	// totals come from the daily summary, which keys calories as "calories"
	body := DailySummaryBody(
		map[string]float64{"calories": 1850.4, "protein_g": 96},
		[]string{"Protein is low by ~20 g", "Great balance otherwise"},
	)

	assert.Contains(t, body, "You logged 1850 kcal today.")
	assert.Contains(t, body, "Protein is low by ~20 g")
	assert.Contains(t, body, "Great balance otherwise")
}

func TestDailySummaryBodyMissingCalories(t *testing.T) {
	body := DailySummaryBody(map[string]float64{}, nil)
	assert.Contains(t, body, "You logged 0 kcal today.")
}
