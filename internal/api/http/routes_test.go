package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-search/internal/weather"
	"github.com/i474232898/weather-search/internal/weather/providers"
)

type fakeService struct {
	lastQuery weather.Query
	lookupErr error

	preds      []weather.Prediction
	suggestErr error
	lastToken  string
}

func (f *fakeService) Lookup(_ context.Context, q weather.Query) (weather.Payload, error) {
	f.lastQuery = q
	if f.lookupErr != nil {
		return weather.Payload{}, f.lookupErr
	}
	return weather.Payload{Name: "Boulder", Coords: weather.Coordinates{Lat: 40.015, Lon: -105.2705}}, nil
}

func (f *fakeService) Suggest(_ context.Context, _ string, token string) ([]weather.Prediction, error) {
	f.lastToken = token
	return f.preds, f.suggestErr
}

func newTestApp(svc WeatherService) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, svc)
	return app
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

// TestSearchValidation checks that /search needs a city or a full
// coordinate pair and a known unit system.
func TestSearchValidation(t *testing.T) {
	app := newTestApp(&fakeService{})

	for _, target := range []string{
		"/search",
		"/search?lat=40",
		"/search?lon=-105",
		"/search?lat=91&lon=0",
		"/search?lat=abc&lon=0",
		"/search?city=Boulder&units=kelvin",
	} {
		resp, _ := get(t, app, target)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, target)
	}
}

func TestSearchByCity(t *testing.T) {
	svc := &fakeService{}
	app := newTestApp(svc)

	resp, body := get(t, app, "/search?city=Boulder%2C%20CO%2C%20USA")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "Boulder, CO, USA", svc.lastQuery.Search.City)
	assert.Nil(t, svc.lastQuery.Search.Coords)
	assert.Equal(t, weather.UnitsImperial, svc.lastQuery.Unit)

	var p weather.Payload
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Equal(t, "Boulder", p.Name)
}

func TestSearchCoordsWinOverCity(t *testing.T) {
	svc := &fakeService{}
	app := newTestApp(svc)

	resp, _ := get(t, app, "/search?city=Paris&lat=40.015&lon=-105.2705&units=metric")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, svc.lastQuery.Search.Coords)
	assert.Equal(t, weather.Coordinates{Lat: 40.015, Lon: -105.2705}, *svc.lastQuery.Search.Coords)
	assert.True(t, svc.lastQuery.ByCoords())
	assert.Equal(t, weather.UnitsMetric, svc.lastQuery.Unit)
}

func TestSearchErrors(t *testing.T) {
	svc := &fakeService{lookupErr: fmt.Errorf("fetch: %w", providers.ErrNotFound)}
	resp, _ := get(t, newTestApp(svc), "/search?city=Atlantis")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	svc = &fakeService{lookupErr: errors.New("upstream down")}
	resp, _ = get(t, newTestApp(svc), "/search?city=Boulder")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestSuggest(t *testing.T) {
	svc := &fakeService{preds: []weather.Prediction{{Description: "Boulder, CO, USA", PlaceID: "p1"}}}
	app := newTestApp(svc)

	resp, _ := get(t, app, "/suggest")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := get(t, app, "/suggest?input=boul&session=abc")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "abc", svc.lastToken)

	var out struct {
		Predictions []weather.Prediction `json:"predictions"`
		Status      string               `json:"status"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "OK", out.Status)
	require.Len(t, out.Predictions, 1)
	assert.Equal(t, "p1", out.Predictions[0].PlaceID)

	svc.preds = nil
	_, body = get(t, app, "/suggest?input=zzzz")
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "ZERO_RESULTS", out.Status)
}

func TestSuggestErrors(t *testing.T) {
	resp, _ := get(t, newTestApp(&fakeService{suggestErr: weather.ErrNoSuggester}), "/suggest?input=boul")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, _ = get(t, newTestApp(&fakeService{suggestErr: errors.New("denied")}), "/suggest?input=boul")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
