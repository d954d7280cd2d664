package ui

import (
	"sync"

	"github.com/i474232898/weather-search/internal/weather"
)

// UnitItem is one of the two toggle entries.
type UnitItem struct {
	Label  string
	Unit   weather.Units
	Active bool
}

// UnitToggle is a two-state imperial/metric selector. Changing it has no
// network effect until the next search submission.
type UnitToggle struct {
	mu   sync.RWMutex
	unit weather.Units
}

// NewUnitToggle starts at u, or imperial when u is not a valid unit.
func NewUnitToggle(u weather.Units) *UnitToggle {
	if !u.Valid() {
		u = weather.UnitsImperial
	}
	return &UnitToggle{unit: u}
}

// Set selects u. Invalid units are ignored.
func (t *UnitToggle) Set(u weather.Units) {
	if !u.Valid() {
		return
	}
	t.mu.Lock()
	t.unit = u
	t.mu.Unlock()
}

func (t *UnitToggle) Unit() weather.Units {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.unit
}

// Items returns both entries in display order with exactly one active.
func (t *UnitToggle) Items() []UnitItem {
	u := t.Unit()
	return []UnitItem{
		{Label: "Imperial", Unit: weather.UnitsImperial, Active: u == weather.UnitsImperial},
		{Label: "Metric", Unit: weather.UnitsMetric, Active: u == weather.UnitsMetric},
	}
}
