package main

import (
	"context"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/weather-search/internal/api/http"
	"github.com/i474232898/weather-search/internal/config"
	"github.com/i474232898/weather-search/internal/logging"
	"github.com/i474232898/weather-search/internal/metrics"
	"github.com/i474232898/weather-search/internal/scheduler"
	"github.com/i474232898/weather-search/internal/store"
	"github.com/i474232898/weather-search/internal/weather"
	"github.com/i474232898/weather-search/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logging.New("weather-search", cfg.LogLevel)
	defer log.Sync()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	cache := newStore(cfg, log)
	if c, ok := cache.(io.Closer); ok {
		defer c.Close()
	}

	opts := []weather.Option{weather.WithLogger(log)}
	if cfg.GooglePlacesAPIKey != "" {
		opts = append(opts,
			weather.WithSuggester(providers.NewPlacesProvider(httpClient, cfg.GooglePlacesAPIKey)),
			weather.WithGeocoder(providers.NewGoogleGeocoder(cfg.GooglePlacesAPIKey)),
		)
	} else {
		log.Warn("GOOGLE_PLACES_API_KEY not set; suggestions and geocoding disabled")
	}

	service := weather.NewService(cache, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey), opts...)

	// Keep the default city warm in both unit systems.
	warm := []weather.Query{
		{Search: cfg.DefaultQuery.Search, Unit: weather.UnitsImperial},
		{Search: cfg.DefaultQuery.Search, Unit: weather.UnitsMetric},
	}
	sched := scheduler.New(warm, cfg.WarmInterval, service, log)
	if err := sched.Start(); err != nil {
		log.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "weather-search",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(metrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-search",
		})
	})
	app.Get("/metrics", metrics.Handler())

	httpapi.RegisterRoutes(app, service)

	go func() {
		log.Info("listening", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error("fiber server stopped", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
}

// newStore returns a Redis-backed cache when REDIS_ADDR is set and
// reachable, otherwise an in-memory one.
func newStore(cfg *config.AppConfig, log *zap.Logger) weather.Store {
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rs, err := store.NewRedisStore(ctx, cfg.RedisAddr, cfg.CacheTTL)
		if err == nil {
			log.Info("using redis payload cache", zap.String("addr", cfg.RedisAddr))
			return rs
		}
		log.Warn("redis unavailable; falling back to memory cache", zap.Error(err))
	}
	return store.NewMemoryStore(cfg.CacheMaxEntries, cfg.CacheTTL)
}
