package utils

import (
	"math"
	"strings"
)

// Profile is the subset of user data the target calculation needs.
// Zero-valued fields fall back to sensible defaults.
type Profile struct {
	Sex           string
	Age           float64
	HeightCm      float64
	WeightKg      float64
	ActivityLevel string // sedentary|light|moderate|very|extra
	Goal          string // cut|maintain|bulk
}

// Targets holds the derived daily calorie and macro targets.
type Targets struct {
	BMR           float64 `json:"bmr"`
	TDEE          float64 `json:"tdee"`
	CalorieTarget float64 `json:"calorie_target"`
	ProteinG      float64 `json:"protein_target_g"`
	FatG          float64 `json:"fat_target_g"`
	CarbG         float64 `json:"carb_target_g"`
	Goal          string  `json:"goal"`
}

// BMR via Mifflin–St Jeor.
func bmrMSJ(sex string, age, heightCm, weightKg float64) float64 {
	s := -161.0
	if strings.HasPrefix(strings.ToLower(sex), "m") {
		s = 5
	}
	return 10*weightKg + 6.25*heightCm - 5*age + s
}

func activityMult(level string) float64 {
	switch strings.ToLower(level) {
	case "sedentary":
		return 1.2
	case "light":
		return 1.375
	case "moderate":
		return 1.55
	case "very":
		return 1.725
	case "extra":
		return 1.9
	default:
		return 1.375
	}
}

func isCut(goal string) bool {
	switch goal {
	case "cut", "fatloss", "weight loss", "lose":
		return true
	}
	return false
}

func isBulk(goal string) bool {
	switch goal {
	case "bulk", "gain", "muscle gain":
		return true
	}
	return false
}

// TargetsFromProfile derives daily calorie and macro targets: calories
// from TDEE adjusted for the goal (floored at 1200), protein at 1.6 g/kg
// (1.8 when cutting), fat at 0.8 g/kg, carbs taking the remaining
// calories on the 4/4/9 rule.
func TargetsFromProfile(p Profile) Targets {
	sex := p.Sex
	if sex == "" {
		sex = "male"
	}
	age := defaultIfZero(p.Age, 25)
	height := defaultIfZero(p.HeightCm, 170)
	weight := defaultIfZero(p.WeightKg, 70)
	goal := strings.ToLower(strings.TrimSpace(p.Goal))
	if goal == "" {
		goal = "maintain"
	}

	bmr := bmrMSJ(sex, age, height, weight)
	tdee := bmr * activityMult(p.ActivityLevel)

	calTarget := tdee
	if isCut(goal) {
		calTarget = tdee - 400
	} else if isBulk(goal) {
		calTarget = tdee + 300
	}
	if calTarget < 1200 {
		calTarget = 1200
	}

	protPerKg := 1.6
	if isCut(goal) {
		protPerKg = 1.8
	}
	protein := math.Round(protPerKg * weight)
	fat := math.Round(0.8 * weight)
	carb := math.Round((calTarget - protein*4 - fat*9) / 4)
	if carb < 0 {
		carb = 0
	}

	return Targets{
		BMR:           math.Round(bmr),
		TDEE:          math.Round(tdee),
		CalorieTarget: math.Round(calTarget),
		ProteinG:      protein,
		FatG:          fat,
		CarbG:         carb,
		Goal:          goal,
	}
}

func defaultIfZero(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
