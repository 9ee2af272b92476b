package services

import (
	"time"

	"github.com/shivtchandra/food-analysis/models"

	"gorm.io/gorm"
)

type MealService struct {
	db *gorm.DB
}

func NewMealService(db *gorm.DB) *MealService {
	return &MealService{db: db}
}

// LogConfirmed persists one MealLog per computed line of a confirmed scan,
// snapshotting the scaled nutrients so later aggregation needs no lookup.
func (s *MealService) LogConfirmed(userID uint, resp NutrientResponse, ateAt time.Time) ([]models.MealLog, error) {
	logs := make([]models.MealLog, 0, len(resp.PerItemProvenance))
	for _, item := range resp.PerItemProvenance {
		entry := models.MealLog{
			UserID:      userID,
			ItemName:    item.MappedTo,
			Quantity:    item.Quantity,
			PortionMult: item.PortionMult,
			Nutrients:   models.NutrientMap(item.Macros),
			Source:      "scan",
			AteAt:       ateAt,
		}
		if err := s.db.Create(&entry).Error; err != nil {
			return nil, err
		}
		logs = append(logs, entry)
	}
	return logs, nil
}

// LogManual records a single hand-entered meal line. When only a manual
// calorie figure is known the snapshot carries just that.
func (s *MealService) LogManual(userID uint, name string, qty, portion float64, manualCal *float64, nutrients models.NutrientMap, ateAt time.Time) (*models.MealLog, error) {
	if qty <= 0 {
		qty = 1
	}
	if portion <= 0 {
		portion = 1
	}
	snapshot := models.NutrientMap{}
	for k, v := range nutrients {
		snapshot[k] = v * qty * portion
	}
	if manualCal != nil && len(snapshot) == 0 {
		snapshot["calories_kcal"] = *manualCal * qty * portion
	}
	entry := models.MealLog{
		UserID:         userID,
		ItemName:       name,
		Quantity:       qty,
		PortionMult:    portion,
		ManualCalories: manualCal,
		Nutrients:      snapshot,
		Source:         "manual",
		AteAt:          ateAt,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

type DayItem struct {
	ID       uint    `json:"id"`
	Item     string  `json:"item"`
	Quantity float64 `json:"quantity"`
}

// DaySummary is one day's aggregated macros plus the lines behind them.
type DaySummary struct {
	Day      string    `json:"day"`
	Calories float64   `json:"calories"`
	ProteinG float64   `json:"protein_g"`
	CarbsG   float64   `json:"carbs_g"`
	FatG     float64   `json:"fat_g"`
	FiberG   float64   `json:"fiber_g"`
	Items    []DayItem `json:"items"`
}

// History aggregates meal logs per day over [from, to] inclusive. Older
// snapshots used shorter macro keys, so each macro reads its legacy key as
// fallback.
func (s *MealService) History(userID uint, from, to time.Time) ([]DaySummary, error) {
	var logs []models.MealLog
	err := s.db.
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, from, to.AddDate(0, 0, 1)).
		Order("ate_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	dayMap := map[string]*DaySummary{}
	var order []string
	for _, l := range logs {
		day := l.AteAt.Format("2006-01-02")
		d, ok := dayMap[day]
		if !ok {
			d = &DaySummary{Day: day, Items: []DayItem{}}
			dayMap[day] = d
			order = append(order, day)
		}
		ns := l.Nutrients
		d.Calories += ns["calories_kcal"]
		d.ProteinG += ns["protein_g"]
		d.CarbsG += pickNutrient(ns, "total_carbohydrate_g", "carbs")
		d.FatG += pickNutrient(ns, "total_fat_g", "fat")
		d.FiberG += pickNutrient(ns, "dietary_fiber_g", "fiber_g")
		d.Items = append(d.Items, DayItem{ID: l.ID, Item: l.ItemName, Quantity: l.Quantity})
	}

	out := make([]DaySummary, 0, len(order))
	for _, day := range order {
		out = append(out, *dayMap[day])
	}
	return out, nil
}

// ListForDay returns the raw logs of one calendar day, oldest first.
func (s *MealService) ListForDay(userID uint, day time.Time) ([]models.MealLog, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	var logs []models.MealLog
	err := s.db.
		Where("user_id = ? AND ate_at >= ? AND ate_at < ?", userID, start, start.AddDate(0, 0, 1)).
		Order("ate_at ASC").
		Find(&logs).Error
	return logs, err
}

func pickNutrient(ns models.NutrientMap, keys ...string) float64 {
	for _, k := range keys {
		if v, ok := ns[k]; ok && v != 0 {
			return v
		}
	}
	return 0
}
