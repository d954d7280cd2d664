package view

import (
	"fmt"
	"strings"

	"github.com/i474232898/weather-search/internal/weather"
)

// Layer names a weather overlay.
type Layer string

const (
	LayerPrecipitation Layer = "Precipitation"
	LayerTemperature   Layer = "Temperature"
	LayerWind          Layer = "Wind Speed"
	LayerClouds        Layer = "Cloud coverage"
)

// Layers lists the overlays in display order.
var Layers = []Layer{LayerPrecipitation, LayerTemperature, LayerWind, LayerClouds}

var overlayPaths = map[Layer]string{
	LayerPrecipitation: "precipitation_new",
	LayerTemperature:   "temp_new",
	LayerWind:          "wind_new",
	LayerClouds:        "clouds_new",
}

const (
	mapStyleID    = "mapbox/streets-v11"
	mapMaxZoom    = 14
	mapTileSize   = 512
	mapZoomOffset = -1
	mapViewZoom   = 13
	markerTitle   = "Location weather data was pulled from"
	attribution   = `Map data &copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors, Imagery © <a href="https://www.mapbox.com/">Mapbox</a>`
)

// MapConfig carries the tile provider keys.
type MapConfig struct {
	MapboxToken   string
	OpenWeatherID string
}

// TileLayer describes a raster tile source.
type TileLayer struct {
	Name        string
	URLTemplate string
	MaxZoom     int
	TileSize    int
	ZoomOffset  int
	Attribution string
}

// Overlay is a weather tile layer with its toggle state.
type Overlay struct {
	TileLayer
	Enabled bool
}

// Marker pins the location the payload was pulled from.
type Marker struct {
	Position weather.Coordinates
	Title    string
}

// MapView is everything needed to draw the map for a payload.
type MapView struct {
	Center   weather.Coordinates
	Zoom     int
	Base     TileLayer
	Overlays []Overlay
	Marker   Marker
}

// OverlaySet tracks which overlays are switched on. It is independent of
// the weather payload.
type OverlaySet map[Layer]bool

// Toggle flips layer and reports its new state. Unknown layers are ignored.
func (s OverlaySet) Toggle(l Layer) bool {
	if _, ok := overlayPaths[l]; !ok {
		return false
	}
	s[l] = !s[l]
	return s[l]
}

// ParseLayer matches a layer by case-insensitive name or prefix.
func ParseLayer(name string) (Layer, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}
	for _, l := range Layers {
		if strings.HasPrefix(strings.ToLower(string(l)), name) {
			return l, true
		}
	}
	return "", false
}

// RenderMap builds the map description for coords. It returns nil for nil
// coordinates.
func RenderMap(coords *weather.Coordinates, cfg MapConfig, overlays OverlaySet) *MapView {
	if coords == nil {
		return nil
	}

	m := &MapView{
		Center: *coords,
		Zoom:   mapViewZoom,
		Base: TileLayer{
			Name:        mapStyleID,
			URLTemplate: fmt.Sprintf("https://api.mapbox.com/styles/v1/%s/tiles/{z}/{x}/{y}?access_token=%s", mapStyleID, cfg.MapboxToken),
			MaxZoom:     mapMaxZoom,
			TileSize:    mapTileSize,
			ZoomOffset:  mapZoomOffset,
			Attribution: attribution,
		},
		Marker: Marker{Position: *coords, Title: markerTitle},
	}

	for _, l := range Layers {
		m.Overlays = append(m.Overlays, Overlay{
			TileLayer: TileLayer{
				Name:        string(l),
				URLTemplate: fmt.Sprintf("https://tile.openweathermap.org/map/%s/{z}/{x}/{y}.png?appid=%s", overlayPaths[l], cfg.OpenWeatherID),
				MaxZoom:     mapMaxZoom,
			},
			Enabled: overlays[l],
		})
	}
	return m
}

// Lines renders the map description as text.
func (m *MapView) Lines() []string {
	if m == nil {
		return nil
	}
	lines := []string{
		fmt.Sprintf("Map: %.4f, %.4f (zoom %d)", m.Center.Lat, m.Center.Lon, m.Zoom),
		fmt.Sprintf("Marker: %s", m.Marker.Title),
	}
	var b strings.Builder
	b.WriteString("Layers:")
	for _, o := range m.Overlays {
		mark := " "
		if o.Enabled {
			mark = "x"
		}
		fmt.Fprintf(&b, " [%s] %s", mark, o.Name)
	}
	return append(lines, b.String())
}
