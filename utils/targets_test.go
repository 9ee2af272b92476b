package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetsFromProfileMaintain(t *testing.T) {
	got := TargetsFromProfile(Profile{
		Sex: "male", Age: 30, HeightCm: 180, WeightKg: 80,
		ActivityLevel: "moderate", Goal: "maintain",
	})

	// 10*80 + 6.25*180 - 5*30 + 5
	assert.Equal(t, 1780.0, got.BMR)
	assert.Equal(t, 2759.0, got.TDEE)
	assert.Equal(t, got.TDEE, got.CalorieTarget)
	assert.Equal(t, 128.0, got.ProteinG) // 1.6 g/kg
	assert.Equal(t, 64.0, got.FatG)      // 0.8 g/kg
	assert.Equal(t, "maintain", got.Goal)
}

func TestTargetsFromProfileCut(t *testing.T) {
	got := TargetsFromProfile(Profile{
		Sex: "female", Age: 28, HeightCm: 165, WeightKg: 60,
		ActivityLevel: "light", Goal: "cut",
	})

	assert.Equal(t, got.TDEE-400, got.CalorieTarget)
	assert.Equal(t, 108.0, got.ProteinG) // 1.8 g/kg when cutting
	assert.GreaterOrEqual(t, got.CalorieTarget, 1200.0)
}

func TestTargetsFromProfileCalorieFloor(t *testing.T) {
	got := TargetsFromProfile(Profile{
		Sex: "female", Age: 70, HeightCm: 150, WeightKg: 40,
		ActivityLevel: "sedentary", Goal: "cut",
	})
	assert.Equal(t, 1200.0, got.CalorieTarget)
}

func TestTargetsFromProfileDefaults(t *testing.T) {
	got := TargetsFromProfile(Profile{})

	// defaults: male, 25y, 170cm, 70kg, 1.375 activity, maintain
	assert.Equal(t, 1643.0, got.BMR)
	assert.Equal(t, "maintain", got.Goal)
	assert.Equal(t, 112.0, got.ProteinG)
}

func TestCarbsNeverNegative(t *testing.T) {
	got := TargetsFromProfile(Profile{
		Sex: "female", Age: 80, HeightCm: 145, WeightKg: 120,
		ActivityLevel: "sedentary", Goal: "cut",
	})
	assert.GreaterOrEqual(t, got.CarbG, 0.0)
}
