package weather

import (
	"context"
	"errors"
)

var (
	// ErrInvalidQuery is returned when a query names neither a city nor coordinates.
	ErrInvalidQuery = errors.New("query requires a city or coordinates")
	// ErrNoProvider is returned when the service has no weather provider wired.
	ErrNoProvider = errors.New("no weather provider configured")
	// ErrNoSuggester is returned when place suggestions are requested without a suggester.
	ErrNoSuggester = errors.New("no place suggester configured")
)

// Reading is a provider's raw current-weather observation, in the units
// system that was requested from it.
type Reading struct {
	Name   string
	Coords Coordinates

	Sunrise int64
	Sunset  int64

	Temp      float64
	FeelsLike float64
	TempMin   float64
	TempMax   float64

	HumidityPct float64
	PressureHpa float64
	VisibilityM float64
	WindSpeed   float64
	WindDeg     float64

	Main        string
	Description string
}

// Provider abstracts a current-weather source (e.g. OpenWeatherMap).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, q Query) (Reading, error)
}

// Geocoder resolves a free-form city name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, city string) (Coordinates, error)
}

// Suggester returns city predictions for partially typed input.
type Suggester interface {
	Autocomplete(ctx context.Context, input, sessionToken string) ([]Prediction, error)
}

// Store is the contract for payload caches (in-memory or shared).
type Store interface {
	Save(ctx context.Context, key string, payload Payload) error
	Get(ctx context.Context, key string) (Payload, error)
	Prune(ctx context.Context) int
}

// Prediction is a single autocomplete candidate in the places response shape.
type Prediction struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
	Terms       []Term `json:"terms"`
}

// Term is one component of a prediction's description.
type Term struct {
	Offset int    `json:"offset"`
	Value  string `json:"value"`
}
