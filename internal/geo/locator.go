package geo

import (
	"context"
	"errors"

	"github.com/i474232898/weather-search/internal/weather"
)

// ErrUnavailable is returned when no position can be determined.
var ErrUnavailable = errors.New("position unavailable")

// Locator yields the user's current position.
type Locator interface {
	Locate(ctx context.Context) (weather.Coordinates, error)
}

// StaticLocator reports a fixed, configured position.
type StaticLocator struct {
	Position *weather.Coordinates
}

func (l StaticLocator) Locate(ctx context.Context) (weather.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return weather.Coordinates{}, err
	}
	if l.Position == nil {
		return weather.Coordinates{}, ErrUnavailable
	}
	return *l.Position, nil
}
