package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-search/internal/weather"
)

// ErrBadStatus is returned when the backend answers with a non-2xx status.
var ErrBadStatus = errors.New("unexpected status from backend")

// Client talks to the weather-search backend.
type Client struct {
	baseURL   string
	http      *http.Client
	sessionID string
}

// New creates a client for the backend at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: timeout},
		sessionID: uuid.NewString(),
	}
}

// SessionID identifies this client to the backend; it doubles as the
// places session token so one search session is billed once.
func (c *Client) SessionID() string {
	return c.sessionID
}

// SearchURL builds the /search URL for q. Coordinates take precedence over
// the city name.
func (c *Client) SearchURL(q weather.Query) string {
	values := url.Values{}
	if q.Search.Coords != nil {
		values.Set("lat", strconv.FormatFloat(q.Search.Coords.Lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(q.Search.Coords.Lon, 'f', -1, 64))
	} else {
		values.Set("city", q.Search.City)
	}
	unit := q.Unit
	if unit == "" {
		unit = weather.UnitsImperial
	}
	values.Set("units", string(unit))
	return c.baseURL + "/search?" + values.Encode()
}

// Search issues one GET /search. There is no retry.
func (c *Client) Search(ctx context.Context, q weather.Query) (weather.Payload, error) {
	var p weather.Payload
	if err := c.getJSON(ctx, c.SearchURL(q), &p); err != nil {
		return weather.Payload{}, err
	}
	return p, nil
}

// SuggestResponse mirrors the places autocomplete response shape.
type SuggestResponse struct {
	Predictions []weather.Prediction `json:"predictions"`
	Status      string               `json:"status"`
}

// Suggest issues GET /suggest for input.
func (c *Client) Suggest(ctx context.Context, input string) (SuggestResponse, error) {
	values := url.Values{}
	values.Set("input", input)
	values.Set("session", c.sessionID)

	var r SuggestResponse
	err := c.getJSON(ctx, c.baseURL+"/suggest?"+values.Encode(), &r)
	return r, err
}

// Health checks that the backend is reachable.
func (c *Client) Health(ctx context.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.getJSON(ctx, c.baseURL+"/health", &body); err != nil {
		return err
	}
	if body.Status != "ok" {
		return fmt.Errorf("backend reports status %q", body.Status)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Session-ID", c.sessionID)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
