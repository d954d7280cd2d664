package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-search/internal/weather"
	"github.com/i474232898/weather-search/internal/weather/providers"
)

var validate = validator.New()

// WeatherService is what the routes need from weather.Service.
type WeatherService interface {
	Lookup(ctx context.Context, q weather.Query) (weather.Payload, error)
	Suggest(ctx context.Context, input, sessionToken string) ([]weather.Prediction, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service WeatherService) {
	app.Get("/search", func(c *fiber.Ctx) error {
		q, err := parseSearchQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		payload, err := service.Lookup(c.UserContext(), q)
		if err != nil {
			if errors.Is(err, providers.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "city not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
		}

		return c.JSON(payload)
	})

	app.Get("/suggest", func(c *fiber.Ctx) error {
		var req suggestQuery
		req.Input = c.Query("input")
		req.SessionToken = c.Query("session")
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		preds, err := service.Suggest(c.UserContext(), req.Input, req.SessionToken)
		if err != nil {
			if errors.Is(err, weather.ErrNoSuggester) {
				return fiber.NewError(fiber.StatusServiceUnavailable, "suggestions are not configured")
			}
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch suggestions")
		}

		status := "OK"
		if len(preds) == 0 {
			status = "ZERO_RESULTS"
		}
		return c.JSON(fiber.Map{
			"predictions": preds,
			"status":      status,
		})
	})
}

// searchQuery holds the /search query parameters. Either City or both
// coordinates must be present; coordinates win when both are.
type searchQuery struct {
	City  string `validate:"required_without=Lat"`
	Lat   string `validate:"required_with=Lon,omitempty,latitude"`
	Lon   string `validate:"required_with=Lat,omitempty,longitude"`
	Units string `validate:"omitempty,oneof=imperial metric"`
}

func (s searchQuery) toQuery() weather.Query {
	q := weather.Query{
		Search: weather.Search{City: s.City},
		Unit:   weather.UnitsImperial,
	}
	if s.Units != "" {
		q.Unit = weather.Units(s.Units)
	}
	if s.Lat != "" && s.Lon != "" {
		// Both already passed the latitude/longitude validators.
		lat, _ := strconv.ParseFloat(s.Lat, 64)
		lon, _ := strconv.ParseFloat(s.Lon, 64)
		q.Search.Coords = &weather.Coordinates{Lat: lat, Lon: lon}
	}
	return q
}

type suggestQuery struct {
	Input        string `validate:"required,max=200"`
	SessionToken string `validate:"omitempty,max=64"`
}

func parseSearchQuery(c *fiber.Ctx) (weather.Query, error) {
	s := searchQuery{
		City:  c.Query("city"),
		Lat:   c.Query("lat"),
		Lon:   c.Query("lon"),
		Units: c.Query("units"),
	}
	if err := validate.Struct(s); err != nil {
		return weather.Query{}, err
	}
	return s.toQuery(), nil
}
