package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
	"github.com/tidwall/gjson"

	"github.com/i474232898/weather-search/internal/weather"
)

const placesAutocompleteURL = "https://maps.googleapis.com/maps/api/place/autocomplete/json"

// PlacesProvider implements weather.Suggester with Google Places Autocomplete,
// restricted to cities.
type PlacesProvider struct {
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

// NewPlacesProvider creates a provider against the public endpoint.
func NewPlacesProvider(client *http.Client, apiKey string) *PlacesProvider {
	return NewPlacesProviderWithURL(client, apiKey, placesAutocompleteURL)
}

// NewPlacesProviderWithURL creates a provider against baseURL.
func NewPlacesProviderWithURL(client *http.Client, apiKey, baseURL string) *PlacesProvider {
	return &PlacesProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			// Suggestions are latency sensitive; a stale list is useless.
			Backoff: BackoffConfig{MaxRetries: 0, InitialInterval: DefaultBackoff.InitialInterval},
		},
		circuit: newBreaker("places"),
	}
}

// Autocomplete returns city predictions for input. ZERO_RESULTS yields an
// empty slice and no error.
func (p *PlacesProvider) Autocomplete(ctx context.Context, input, sessionToken string) ([]weather.Prediction, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("places: %w", ErrMissingAPIKey)
	}
	if input == "" {
		return nil, nil
	}

	values := url.Values{}
	values.Set("input", input)
	values.Set("types", "(cities)")
	values.Set("key", p.apiKey)
	if sessionToken != "" {
		values.Set("sessiontoken", sessionToken)
	}
	u := p.baseURL + "?" + values.Encode()

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read places response: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("places response is not valid json")
	}

	return parsePredictions(body)
}

func parsePredictions(body []byte) ([]weather.Prediction, error) {
	status := gjson.GetBytes(body, "status").String()
	switch status {
	case "OK":
	case "ZERO_RESULTS":
		return []weather.Prediction{}, nil
	default:
		msg := gjson.GetBytes(body, "error_message").String()
		return nil, fmt.Errorf("places status %s: %s", status, msg)
	}

	raw := gjson.GetBytes(body, "predictions").Array()
	preds := make([]weather.Prediction, 0, len(raw))
	for _, r := range raw {
		pred := weather.Prediction{
			Description: r.Get("description").String(),
			PlaceID:     r.Get("place_id").String(),
		}
		for _, t := range r.Get("terms").Array() {
			pred.Terms = append(pred.Terms, weather.Term{
				Offset: int(t.Get("offset").Int()),
				Value:  t.Get("value").String(),
			})
		}
		preds = append(preds, pred)
	}
	return preds, nil
}
