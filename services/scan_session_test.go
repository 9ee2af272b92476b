package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrF(f float64) *float64 { return &f }
func ptrS(s string) *string   { return &s }

func sessionWith(t *testing.T, texts ...string) *ScanSession {
	t.Helper()
	dets := make([]RawDetection, 0, len(texts))
	for _, txt := range texts {
		dets = append(dets, RawDetection{RawText: txt})
	}
	s := NewScanSession(1)
	s.LoadDetections(dets)
	return s
}

func TestBuildConfirmationEmpty(t *testing.T) {
	_, err := BuildConfirmation(nil)
	assert.ErrorIs(t, err, ErrEmptySubmission)

	s := NewScanSession(1)
	_, err = s.Confirm()
	assert.ErrorIs(t, err, ErrEmptySubmission)
}

func TestBuildConfirmationRounding(t *testing.T) {
	lines, err := BuildConfirmation([]EditableItem{
		{Selected: "Dosa", Quantity: 2, PortionMult: 1.333},
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)

	assert.Equal(t, "Dosa", lines[0].Item)
	assert.Equal(t, 2.666, lines[0].Quantity)
	assert.Equal(t, 1.333, lines[0].PortionMult)
	assert.Nil(t, lines[0].Calories)
}

func TestBuildConfirmationManualCalories(t *testing.T) {
	cal := 250.0
	lines, err := BuildConfirmation([]EditableItem{
		{Selected: "Dosa", Quantity: 1, PortionMult: 1, ManualCalories: &cal},
	})
	require.NoError(t, err)
	require.NotNil(t, lines[0].Calories)
	assert.Equal(t, 250.0, *lines[0].Calories)
}

func TestUpdateItemClampsQuantity(t *testing.T) {
	s := sessionWith(t, "1x Dosa")

	item, err := s.UpdateItem(0, ItemUpdate{Quantity: ptrF(0.1)})
	require.NoError(t, err)
	assert.Equal(t, 0.25, item.Quantity)

	item, err = s.UpdateItem(0, ItemUpdate{PortionMult: ptrF(-3)})
	require.NoError(t, err)
	assert.Equal(t, 0.25, item.PortionMult)
}

func TestUpdateItemLastWriterWinsPerField(t *testing.T) {
	s := sessionWith(t, "1x Dosa")

	_, err := s.UpdateItem(0, ItemUpdate{Quantity: ptrF(2)})
	require.NoError(t, err)
	item, err := s.UpdateItem(0, ItemUpdate{PortionMult: ptrF(0.5)})
	require.NoError(t, err)

	// the portion edit did not clobber the earlier quantity edit
	assert.Equal(t, 2.0, item.Quantity)
	assert.Equal(t, 0.5, item.PortionMult)
}

func TestUpdateItemSelectionValidation(t *testing.T) {
	s := NewScanSession(1)
	s.LoadDetections([]RawDetection{{
		RawText: "1x Paner Pizza",
		Candidates: []Candidate{
			{DBItem: "Paneer Pizza", Score: 0.85},
		},
	}})

	item, err := s.UpdateItem(0, ItemUpdate{Selected: ptrS("Paneer Pizza")})
	require.NoError(t, err)
	assert.Equal(t, "Paneer Pizza", item.Selected)
	assert.Equal(t, 0.85, item.SelectedScore)

	// unknown values are ignored, not applied
	item, err = s.UpdateItem(0, ItemUpdate{Selected: ptrS("Sushi Platter")})
	require.NoError(t, err)
	assert.Equal(t, "Paneer Pizza", item.Selected)

	// falling back to the extracted text is always allowed
	item, err = s.UpdateItem(0, ItemUpdate{Selected: ptrS(item.ExtractedText)})
	require.NoError(t, err)
	assert.Equal(t, "Paner Pizza", item.Selected)
	assert.Equal(t, 0.0, item.SelectedScore)
}

func TestUpdateItemManualCalories(t *testing.T) {
	s := sessionWith(t, "1x Dosa")

	item, err := s.UpdateItem(0, ItemUpdate{ManualCalories: ptrS("240")})
	require.NoError(t, err)
	require.NotNil(t, item.ManualCalories)
	assert.Equal(t, 240.0, *item.ManualCalories)

	// non-numeric input is ignored, the override stays
	item, err = s.UpdateItem(0, ItemUpdate{ManualCalories: ptrS("abc")})
	require.NoError(t, err)
	require.NotNil(t, item.ManualCalories)
	assert.Equal(t, 240.0, *item.ManualCalories)

	// empty input clears it
	item, err = s.UpdateItem(0, ItemUpdate{ManualCalories: ptrS("")})
	require.NoError(t, err)
	assert.Nil(t, item.ManualCalories)
}

func TestRemoveItemRetiresID(t *testing.T) {
	s := sessionWith(t, "1x Dosa", "1x Idli")

	require.NoError(t, s.RemoveItem(0))
	assert.ErrorIs(t, s.RemoveItem(0), ErrItemNotFound)
	_, err := s.UpdateItem(0, ItemUpdate{Quantity: ptrF(2)})
	assert.ErrorIs(t, err, ErrItemNotFound)

	// a new detection gets a fresh id, never the retired one
	item := s.AppendDetection(RawDetection{RawText: "1x Vada"})
	assert.Equal(t, 2, item.ID)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 2, items[1].ID)
}

func TestConfirmUsesEditedValues(t *testing.T) {
	s := sessionWith(t, "2x Veg Biryani")

	_, err := s.UpdateItem(0, ItemUpdate{PortionMult: ptrF(0.5)})
	require.NoError(t, err)

	lines, err := s.Confirm()
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 1.0, lines[0].Quantity) // 2 * 0.5
	assert.Equal(t, 0.5, lines[0].PortionMult)
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()

	s := store.Create(42)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, uint(42), s.UserID)

	got, ok := store.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	store.Delete(s.ID)
	_, ok = store.Get(s.ID)
	assert.False(t, ok)

	// ids are unique across sessions
	s2 := store.Create(42)
	assert.NotEqual(t, s.ID, s2.ID)
}

func TestSummaryLifecycle(t *testing.T) {
	s := sessionWith(t, "1x Dosa")
	assert.Nil(t, s.Summary())

	sum := &NutrientSummary{MicronutrientTotals: map[string]float64{"iron_mg": 2}}
	s.SetSummary(sum)
	assert.Same(t, sum, s.Summary())

	// reloading detections discards the stale summary
	s.LoadDetections([]RawDetection{{RawText: "1x Idli"}})
	assert.Nil(t, s.Summary())
}
