package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/i474232898/weather-search/internal/weather"
)

func activeCount(items []UnitItem) int {
	n := 0
	for _, it := range items {
		if it.Active {
			n++
		}
	}
	return n
}

func TestUnitToggle(t *testing.T) {
	u := NewUnitToggle("")
	assert.Equal(t, weather.UnitsImperial, u.Unit())

	items := u.Items()
	assert.Equal(t, "Imperial", items[0].Label)
	assert.Equal(t, "Metric", items[1].Label)
	assert.True(t, items[0].Active)
	assert.Equal(t, 1, activeCount(items))

	u.Set(weather.UnitsMetric)
	assert.Equal(t, weather.UnitsMetric, u.Unit())
	assert.True(t, u.Items()[1].Active)
	assert.Equal(t, 1, activeCount(u.Items()))

	u.Set("kelvin")
	assert.Equal(t, weather.UnitsMetric, u.Unit())
}
