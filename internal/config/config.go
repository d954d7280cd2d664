package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/weather-search/internal/weather"
)

type AppConfig struct {
	OpenWeatherAPIKey  string
	GooglePlacesAPIKey string
	MapboxAPIKey       string

	Port        string
	HTTPTimeout time.Duration
	LogLevel    string

	// Payload cache retention.
	CacheTTL        time.Duration
	CacheMaxEntries int
	RedisAddr       string // shared cache; empty means in-memory

	// WarmInterval controls how often the default queries are refreshed.
	WarmInterval time.Duration
	DefaultQuery weather.Query

	// Client side.
	BackendURL string
	Debounce   time.Duration
	Home       *weather.Coordinates // fixed position used for "current location"
}

// Load reads configuration from the environment (and an optional .env file)
// with sensible defaults.
func Load() (*AppConfig, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg := &AppConfig{
		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		GooglePlacesAPIKey: os.Getenv("GOOGLE_PLACES_API_KEY"),
		MapboxAPIKey:       os.Getenv("MAPBOX_API_KEY"),
		Port:               getenvDefault("PORT", "4000"),
		LogLevel:           getenvDefault("LOG_LEVEL", "info"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		BackendURL:         getenvDefault("SEARCH_BACKEND_URL", "http://localhost:4000"),
		CacheMaxEntries:    getenvInt("CACHE_MAX_ENTRIES", 500),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getenvDuration("CACHE_TTL", "10m"); err != nil {
		return nil, err
	}
	if cfg.WarmInterval, err = getenvDuration("WARM_INTERVAL", "10m"); err != nil {
		return nil, err
	}
	if cfg.Debounce, err = getenvDuration("DEBOUNCE", "500ms"); err != nil {
		return nil, err
	}

	unit, err := weather.ParseUnits(os.Getenv("DEFAULT_UNITS"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_UNITS: %w", err)
	}
	cfg.DefaultQuery = weather.Query{
		Search: weather.Search{City: getenvDefault("DEFAULT_CITY", weather.DefaultCity)},
		Unit:   unit,
	}

	home, err := loadHome()
	if err != nil {
		return nil, err
	}
	cfg.Home = home

	return cfg, nil
}

// loadHome reads HOME_LAT/HOME_LON. Both or neither must be set.
func loadHome() (*weather.Coordinates, error) {
	latStr, lonStr := os.Getenv("HOME_LAT"), os.Getenv("HOME_LON")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, fmt.Errorf("HOME_LAT and HOME_LON must be set together")
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, fmt.Errorf("invalid HOME_LAT %q", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("invalid HOME_LON %q", lonStr)
	}
	return &weather.Coordinates{Lat: lat, Lon: lon}, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
