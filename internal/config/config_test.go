package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-search/internal/weather"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "HTTP_TIMEOUT", "CACHE_TTL", "DEBOUNCE", "DEFAULT_CITY", "DEFAULT_UNITS", "HOME_LAT", "HOME_LON", "REDIS_ADDR"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce)
	assert.Equal(t, weather.DefaultCity, cfg.DefaultQuery.Search.City)
	assert.Equal(t, weather.UnitsImperial, cfg.DefaultQuery.Unit)
	assert.Nil(t, cfg.Home)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DEFAULT_CITY", "Denver, CO, USA")
	t.Setenv("DEFAULT_UNITS", "metric")
	t.Setenv("DEBOUNCE", "250ms")
	t.Setenv("HOME_LAT", "39.97")
	t.Setenv("HOME_LON", "-105.13")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Denver, CO, USA", cfg.DefaultQuery.Search.City)
	assert.Equal(t, weather.UnitsMetric, cfg.DefaultQuery.Unit)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce)
	require.NotNil(t, cfg.Home)
	assert.Equal(t, weather.Coordinates{Lat: 39.97, Lon: -105.13}, *cfg.Home)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DEFAULT_UNITS", "kelvin")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DEFAULT_UNITS", "")
	t.Setenv("HOME_LAT", "39.97")
	t.Setenv("HOME_LON", "")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("HOME_LON", "200")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("HOME_LAT", "")
	t.Setenv("HOME_LON", "")
	t.Setenv("CACHE_TTL", "ten minutes")
	_, err = Load()
	assert.Error(t, err)
}
