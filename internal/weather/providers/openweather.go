package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/i474232898/weather-search/internal/weather"
	"github.com/sony/gobreaker"
)

const openWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherProvider implements weather.Provider for OpenWeatherMap's
// current weather endpoint.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherProvider creates a provider against the public endpoint.
func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return NewOpenWeatherProviderWithURL(client, apiKey, openWeatherURL)
}

// NewOpenWeatherProviderWithURL creates a provider against baseURL.
func NewOpenWeatherProviderWithURL(client *http.Client, apiKey, baseURL string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: DefaultBackoff,
		},
		circuit: newBreaker("openweather"),
	}
}

// WithBackoff overrides the retry policy.
func (p *OpenWeatherProvider) WithBackoff(b BackoffConfig) *OpenWeatherProvider {
	p.httpCfg.Backoff = b
	return p
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Fetch requests current weather by coordinates when present, otherwise by
// city name.
func (p *OpenWeatherProvider) Fetch(ctx context.Context, q weather.Query) (weather.Reading, error) {
	if p.apiKey == "" {
		return weather.Reading{}, fmt.Errorf("openweather: %w", ErrMissingAPIKey)
	}

	values := url.Values{}
	values.Set("appid", p.apiKey)
	values.Set("units", string(q.Unit))
	if q.Search.Coords != nil {
		values.Set("lat", strconv.FormatFloat(q.Search.Coords.Lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(q.Search.Coords.Lon, 'f', -1, 64))
	} else {
		values.Set("q", q.Search.City)
	}
	u := p.baseURL + "?" + values.Encode()

	buildRequest := func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Reading{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Name  string `json:"name"`
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Sys struct {
			Sunrise int64 `json:"sunrise"`
			Sunset  int64 `json:"sunset"`
		} `json:"sys"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			TempMin   float64 `json:"temp_min"`
			TempMax   float64 `json:"temp_max"`
			Humidity  float64 `json:"humidity"`
			Pressure  float64 `json:"pressure"`
		} `json:"main"`
		Visibility float64 `json:"visibility"`
		Wind       struct {
			Speed float64 `json:"speed"`
			Deg   float64 `json:"deg"`
		} `json:"wind"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
		} `json:"weather"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, fmt.Errorf("decode openweather response: %w", err)
	}
	if len(payload.Weather) == 0 {
		return weather.Reading{}, fmt.Errorf("openweather response has no conditions")
	}

	return weather.Reading{
		Name:        payload.Name,
		Coords:      weather.Coordinates{Lat: payload.Coord.Lat, Lon: payload.Coord.Lon},
		Sunrise:     payload.Sys.Sunrise,
		Sunset:      payload.Sys.Sunset,
		Temp:        payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		TempMin:     payload.Main.TempMin,
		TempMax:     payload.Main.TempMax,
		HumidityPct: payload.Main.Humidity,
		PressureHpa: payload.Main.Pressure,
		VisibilityM: payload.Visibility,
		WindSpeed:   payload.Wind.Speed,
		WindDeg:     payload.Wind.Deg,
		Main:        payload.Weather[0].Main,
		Description: payload.Weather[0].Description,
	}, nil
}
