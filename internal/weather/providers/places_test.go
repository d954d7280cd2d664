package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const placesOK = `{
  "predictions": [
    {
      "description": "Boulder, CO, USA",
      "place_id": "ChIJ06-NJ06Na4cRWIAboHw7Ocg",
      "terms": [
        {"offset": 0, "value": "Boulder"},
        {"offset": 9, "value": "CO"},
        {"offset": 13, "value": "USA"}
      ]
    },
    {
      "description": "Boulder City, NV, USA",
      "place_id": "ChIJmdtQkPIuyYARi6RP5Sq6zWY",
      "terms": [{"offset": 0, "value": "Boulder City"}]
    }
  ],
  "status": "OK"
}`

func TestPlacesAutocomplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "boul", q.Get("input"))
		assert.Equal(t, "(cities)", q.Get("types"))
		assert.Equal(t, "key", q.Get("key"))
		assert.Equal(t, "session-1", q.Get("sessiontoken"))
		w.Write([]byte(placesOK))
	}))
	defer srv.Close()

	p := NewPlacesProviderWithURL(srv.Client(), "key", srv.URL)
	preds, err := p.Autocomplete(context.Background(), "boul", "session-1")
	require.NoError(t, err)

	require.Len(t, preds, 2)
	assert.Equal(t, "Boulder, CO, USA", preds[0].Description)
	assert.Equal(t, "ChIJ06-NJ06Na4cRWIAboHw7Ocg", preds[0].PlaceID)
	require.Len(t, preds[0].Terms, 3)
	assert.Equal(t, "Boulder", preds[0].Terms[0].Value)
	assert.Equal(t, 13, preds[0].Terms[2].Offset)
}

func TestPlacesEmptyInputSkipsUpstream(t *testing.T) {
	p := NewPlacesProviderWithURL(http.DefaultClient, "key", "http://127.0.0.1:1")
	preds, err := p.Autocomplete(context.Background(), "", "")
	assert.NoError(t, err)
	assert.Empty(t, preds)
}

func TestPlacesInvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	p := NewPlacesProviderWithURL(srv.Client(), "key", srv.URL)
	_, err := p.Autocomplete(context.Background(), "boul", "")
	assert.Error(t, err)
}

func TestParsePredictionsStatuses(t *testing.T) {
	preds, err := parsePredictions([]byte(`{"predictions":[],"status":"ZERO_RESULTS"}`))
	require.NoError(t, err)
	assert.NotNil(t, preds)
	assert.Empty(t, preds)

	_, err = parsePredictions([]byte(`{"status":"REQUEST_DENIED","error_message":"The provided API key is invalid."}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
	assert.Contains(t, err.Error(), "The provided API key is invalid.")
}

func TestPlacesRequiresKey(t *testing.T) {
	p := NewPlacesProvider(http.DefaultClient, "")
	_, err := p.Autocomplete(context.Background(), "boul", "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
