package services

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrEmptySubmission is reported when a confirmation is requested with no
// items left in the session.
var ErrEmptySubmission = errors.New("no items to confirm")

// ErrItemNotFound is reported for edits addressed to a removed or unknown id.
var ErrItemNotFound = errors.New("item not found")

// Quantity and portion multiplier can be edited down to a quarter serving
// but never to zero.
const minQuantity = 0.25

// ConfirmedLine is one element of the payload sent for nutrient
// computation. Quantity is the rounded product of the item's quantity and
// portion multiplier; PortionMult is carried separately so the backend can
// re-derive the base quantity.
type ConfirmedLine struct {
	Item        string   `json:"item"`
	Quantity    float64  `json:"quantity"`
	PortionMult float64  `json:"portion_mult"`
	Calories    *float64 `json:"calories,omitempty"`
}

// BuildConfirmation converts editable items into the submission payload.
// It fails on empty input and otherwise never produces partial output;
// order follows the input.
func BuildConfirmation(items []EditableItem) ([]ConfirmedLine, error) {
	if len(items) == 0 {
		return nil, ErrEmptySubmission
	}
	lines := make([]ConfirmedLine, 0, len(items))
	for _, it := range items {
		line := ConfirmedLine{
			Item:        it.Selected,
			Quantity:    round3(it.Quantity * it.PortionMult),
			PortionMult: it.PortionMult,
		}
		if it.ManualCalories != nil {
			cal := *it.ManualCalories
			line.Calories = &cal
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

// ItemUpdate carries the editable fields of one item. Nil fields are left
// untouched; edits apply per field, last writer wins. ManualCalories is a
// string as typed by the user: empty clears the override, anything
// non-numeric is ignored.
type ItemUpdate struct {
	Quantity       *float64 `json:"quantity,omitempty"`
	PortionMult    *float64 `json:"portion_mult,omitempty"`
	Selected       *string  `json:"selected,omitempty"`
	ManualCalories *string  `json:"manual_calories,omitempty"`
}

// ScanSession owns the editable item collection for one active scan. All
// mutation goes through its methods; ids are assigned once and never
// reused after removal.
type ScanSession struct {
	ID     string
	UserID uint

	mu      sync.Mutex
	items   []EditableItem
	nextID  int
	summary *NutrientSummary
}

func NewScanSession(userID uint) *ScanSession {
	return &ScanSession{ID: uuid.NewString(), UserID: userID}
}

// LoadDetections replaces the session's items with the normalized form of
// the given detections.
func (s *ScanSession) LoadDetections(detections []RawDetection) []EditableItem {
	items := NormalizeDetections(detections)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.nextID = len(items)
	s.summary = nil
	return cloneItems(items)
}

// AppendDetection normalizes and appends a single detection, assigning the
// next never-used id.
func (s *ScanSession) AppendDetection(d RawDetection) EditableItem {
	item := NormalizeDetections([]RawDetection{d})[0]

	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = s.nextID
	s.nextID++
	s.items = append(s.items, item)
	return item
}

// Items returns a copy of the current collection in id-assignment order.
func (s *ScanSession) Items() []EditableItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// UpdateItem applies the non-nil fields of upd to the item with the given
// id. Quantity and portion multiplier are clamped to the 0.25 minimum. A
// selection must be one of the item's candidates or its extracted text;
// anything else is ignored.
func (s *ScanSession) UpdateItem(id int, upd ItemUpdate) (EditableItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := s.find(id)
	if it == nil {
		return EditableItem{}, ErrItemNotFound
	}

	if upd.Quantity != nil {
		it.Quantity = clampMin(*upd.Quantity, minQuantity)
	}
	if upd.PortionMult != nil {
		it.PortionMult = clampMin(*upd.PortionMult, minQuantity)
	}
	if upd.Selected != nil {
		if score, ok := selectable(it, *upd.Selected); ok {
			it.Selected = *upd.Selected
			it.SelectedScore = score
		}
	}
	if upd.ManualCalories != nil {
		raw := strings.TrimSpace(*upd.ManualCalories)
		if raw == "" {
			it.ManualCalories = nil
		} else if cal, err := strconv.ParseFloat(raw, 64); err == nil {
			it.ManualCalories = &cal
		}
	}
	return *it, nil
}

// RemoveItem deletes the item with the given id. The id is retired for the
// lifetime of the session.
func (s *ScanSession) RemoveItem(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// Confirm builds the submission payload from the current items.
func (s *ScanSession) Confirm() ([]ConfirmedLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildConfirmation(s.items)
}

// SetSummary stores the reduced result of the latest confirmation,
// replacing any previous one wholesale.
func (s *ScanSession) SetSummary(sum *NutrientSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = sum
}

func (s *ScanSession) Summary() *NutrientSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

func (s *ScanSession) find(id int) *EditableItem {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i]
		}
	}
	return nil
}

// selectable reports whether value is a valid selection for the item and
// the confidence score tied to it (0 for the extracted-text fallback).
func selectable(it *EditableItem, value string) (float64, bool) {
	for _, c := range it.Candidates {
		if c.DBItem == value {
			return c.Score, true
		}
	}
	if value == it.ExtractedText || value == it.RawText {
		return 0, true
	}
	return 0, false
}

func clampMin(v, min float64) float64 {
	if v < min {
		return min
	}
	return v
}

func cloneItems(items []EditableItem) []EditableItem {
	out := make([]EditableItem, len(items))
	copy(out, items)
	return out
}

// SessionStore keeps the active scan sessions in memory, one exclusive
// owner per session id.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*ScanSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*ScanSession)}
}

func (st *SessionStore) Create(userID uint) *ScanSession {
	s := NewScanSession(userID)
	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return s
}

func (st *SessionStore) Get(id string) (*ScanSession, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}
