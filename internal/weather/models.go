package weather

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultCity is searched on first load when nothing else was requested.
const DefaultCity = "Boulder, CO, USA"

// Units selects the measurement system for a weather request.
type Units string

const (
	UnitsImperial Units = "imperial"
	UnitsMetric   Units = "metric"
)

// Valid reports whether u is one of the supported unit systems.
func (u Units) Valid() bool {
	return u == UnitsImperial || u == UnitsMetric
}

// ParseUnits maps a raw query value to Units. Empty input yields imperial.
func ParseUnits(s string) (Units, error) {
	if s == "" {
		return UnitsImperial, nil
	}
	u := Units(strings.ToLower(s))
	if !u.Valid() {
		return "", fmt.Errorf("unsupported units %q", s)
	}
	return u, nil
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Search identifies the place part of a query. Coords wins over City.
type Search struct {
	City   string       `json:"city"`
	Coords *Coordinates `json:"coords,omitempty"`
}

// Query is the full set of parameters that determines a weather request.
type Query struct {
	Search Search `json:"search"`
	Unit   Units  `json:"unit"`
}

// ByCoords reports whether the query will be sent in coordinate form.
func (q Query) ByCoords() bool {
	return q.Search.Coords != nil
}

// Key returns a canonical identity for the query, used for cache lookups
// and to decide whether a query differs from the current one.
func (q Query) Key() string {
	unit := q.Unit
	if unit == "" {
		unit = UnitsImperial
	}
	if q.Search.Coords != nil {
		return "coords:" + formatCoord(q.Search.Coords.Lat) + "," + formatCoord(q.Search.Coords.Lon) + ":" + string(unit)
	}
	return "city:" + strings.ToLower(strings.TrimSpace(q.Search.City)) + ":" + string(unit)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// Payload is the weather response served by /search. Values inside Weather
// are already formatted for display in the requested unit system.
type Payload struct {
	Coords  Coordinates `json:"coords"`
	Time    SunTime     `json:"time"`
	Weather Conditions  `json:"weather"`
	Name    string      `json:"name"`
}

// SunTime carries sunrise and sunset as epoch values from the upstream provider.
type SunTime struct {
	Sunrise int64 `json:"sunrise"`
	Sunset  int64 `json:"sunset"`
}

// Conditions holds the displayable weather description.
type Conditions struct {
	Description string      `json:"description"`
	Humidity    string      `json:"humidity"`
	Main        string      `json:"main"`
	Pressure    string      `json:"pressure"`
	Temperature Temperature `json:"temperature"`
	Wind        Wind        `json:"wind"`
	Visibility  string      `json:"visibility"`
}

type Temperature struct {
	FeelsLike  string `json:"feelsLike"`
	TempActual string `json:"tempActual"`
	TempMin    string `json:"tempMin"`
	TempMax    string `json:"tempMax"`
}

type Wind struct {
	Direction string `json:"direction"`
	Speed     string `json:"speed"`
}
