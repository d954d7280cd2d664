package providers

import (
	"context"
	"fmt"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/weather-search/internal/weather"
)

// geocodeFunc matches geocoder.Geocoding; swapped in tests.
type geocodeFunc func(geocoder.Address) (geocoder.Location, error)

// GoogleGeocoder implements weather.Geocoder with the Google Geocoding API.
type GoogleGeocoder struct {
	apiKey  string
	geocode geocodeFunc
}

// The geocoder package keeps its key in a package variable.
var geocoderKeyMu sync.Mutex

// NewGoogleGeocoder returns a geocoder using apiKey.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{apiKey: apiKey, geocode: geocoder.Geocoding}
}

// Geocode resolves a city display string such as "Boulder, CO, USA".
// The underlying client is not context aware, so cancellation only stops
// the wait.
func (g *GoogleGeocoder) Geocode(ctx context.Context, city string) (weather.Coordinates, error) {
	if g.apiKey == "" {
		return weather.Coordinates{}, fmt.Errorf("geocoder: %w", ErrMissingAPIKey)
	}

	type result struct {
		loc geocoder.Location
		err error
	}
	done := make(chan result, 1)

	go func() {
		geocoderKeyMu.Lock()
		defer geocoderKeyMu.Unlock()
		geocoder.ApiKey = g.apiKey
		loc, err := g.geocode(geocoder.Address{City: city})
		done <- result{loc: loc, err: err}
	}()

	select {
	case <-ctx.Done():
		return weather.Coordinates{}, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return weather.Coordinates{}, fmt.Errorf("geocode %q: %w", city, r.err)
		}
		if r.loc.Latitude == 0 && r.loc.Longitude == 0 {
			return weather.Coordinates{}, fmt.Errorf("geocode %q: %w", city, ErrNotFound)
		}
		return weather.Coordinates{Lat: r.loc.Latitude, Lon: r.loc.Longitude}, nil
	}
}
