package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-search/internal/weather"
)

func TestRenderMap(t *testing.T) {
	assert.Nil(t, RenderMap(nil, MapConfig{}, nil))

	c := &weather.Coordinates{Lat: 40.015, Lon: -105.2705}
	m := RenderMap(c, MapConfig{MapboxToken: "mb", OpenWeatherID: "ow"}, OverlaySet{LayerClouds: true})
	require.NotNil(t, m)

	assert.Equal(t, *c, m.Center)
	assert.Equal(t, 13, m.Zoom)
	assert.Equal(t, *c, m.Marker.Position)
	assert.Equal(t, "Location weather data was pulled from", m.Marker.Title)

	assert.Equal(t, "mapbox/streets-v11", m.Base.Name)
	assert.Equal(t, 14, m.Base.MaxZoom)
	assert.Equal(t, 512, m.Base.TileSize)
	assert.Equal(t, -1, m.Base.ZoomOffset)
	assert.Contains(t, m.Base.URLTemplate, "access_token=mb")

	require.Len(t, m.Overlays, 4)
	assert.Equal(t, "Precipitation", m.Overlays[0].Name)
	assert.Equal(t, "https://tile.openweathermap.org/map/precipitation_new/{z}/{x}/{y}.png?appid=ow", m.Overlays[0].URLTemplate)
	assert.Equal(t, "Cloud coverage", m.Overlays[3].Name)
	assert.True(t, m.Overlays[3].Enabled)
	assert.False(t, m.Overlays[0].Enabled)
}

func TestOverlaySet(t *testing.T) {
	s := OverlaySet{}
	assert.True(t, s.Toggle(LayerTemperature))
	assert.False(t, s.Toggle(LayerTemperature))
	assert.False(t, s.Toggle(Layer("Snow")))
	assert.NotContains(t, s, Layer("Snow"))
}

func TestParseLayer(t *testing.T) {
	l, ok := ParseLayer("wind")
	require.True(t, ok)
	assert.Equal(t, LayerWind, l)

	l, ok = ParseLayer("CLOUD")
	require.True(t, ok)
	assert.Equal(t, LayerClouds, l)

	_, ok = ParseLayer("snow")
	assert.False(t, ok)
	_, ok = ParseLayer(" ")
	assert.False(t, ok)
}

func TestMapLines(t *testing.T) {
	var nilMap *MapView
	assert.Nil(t, nilMap.Lines())

	m := RenderMap(&weather.Coordinates{Lat: 40.015, Lon: -105.2705}, MapConfig{}, OverlaySet{LayerWind: true})
	assert.Equal(t, []string{
		"Map: 40.0150, -105.2705 (zoom 13)",
		"Marker: Location weather data was pulled from",
		"Layers: [ ] Precipitation [ ] Temperature [x] Wind Speed [ ] Cloud coverage",
	}, m.Lines())
}
