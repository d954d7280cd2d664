package weather

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/i474232898/weather-search/internal/metrics"
)

// Service resolves weather queries through a payload cache and an upstream
// provider, and proxies place suggestions.
type Service struct {
	store     Store
	provider  Provider
	geocoder  Geocoder
	suggester Suggester
	log       *zap.Logger
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithGeocoder makes name-based queries resolve to coordinates first.
func WithGeocoder(g Geocoder) Option {
	return func(s *Service) { s.geocoder = g }
}

// WithSuggester enables Suggest.
func WithSuggester(sg Suggester) Option {
	return func(s *Service) { s.suggester = sg }
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.log = l }
}

// NewService creates a new Service.
func NewService(store Store, provider Provider, opts ...Option) *Service {
	s := &Service{
		store:    store,
		provider: provider,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Lookup returns the payload for q, serving it from the cache when a fresh
// entry exists.
func (s *Service) Lookup(ctx context.Context, q Query) (Payload, error) {
	if err := validateQuery(q); err != nil {
		return Payload{}, err
	}
	if q.Unit == "" {
		q.Unit = UnitsImperial
	}

	key := q.Key()
	if s.store != nil {
		if p, err := s.store.Get(ctx, key); err == nil {
			metrics.CacheHits.WithLabelValues("payload").Inc()
			return p, nil
		}
		metrics.CacheMisses.WithLabelValues("payload").Inc()
	}

	return s.fetchAndStore(ctx, q)
}

// Refresh fetches q from the provider and overwrites any cached entry.
func (s *Service) Refresh(ctx context.Context, q Query) error {
	if err := validateQuery(q); err != nil {
		return err
	}
	if q.Unit == "" {
		q.Unit = UnitsImperial
	}
	_, err := s.fetchAndStore(ctx, q)
	return err
}

// Prune drops expired cache entries and reports how many were removed.
func (s *Service) Prune(ctx context.Context) int {
	if s.store == nil {
		return 0
	}
	return s.store.Prune(ctx)
}

func (s *Service) fetchAndStore(ctx context.Context, q Query) (Payload, error) {
	if s.provider == nil {
		return Payload{}, ErrNoProvider
	}

	upstream := s.resolve(ctx, q)

	r, err := s.provider.Fetch(ctx, upstream)
	if err != nil {
		metrics.ProviderErrors.WithLabelValues(s.provider.Name()).Inc()
		s.log.Warn("provider fetch failed",
			zap.String("provider", s.provider.Name()),
			zap.String("query", q.Key()),
			zap.Error(err))
		return Payload{}, fmt.Errorf("fetch %s: %w", q.Key(), err)
	}

	p := BuildPayload(r, q.Unit)
	if s.store != nil {
		if err := s.store.Save(ctx, q.Key(), p); err != nil {
			s.log.Warn("cache save failed", zap.String("query", q.Key()), zap.Error(err))
		}
	}
	metrics.Searches.WithLabelValues(searchMode(q), string(q.Unit)).Inc()
	return p, nil
}

// resolve geocodes name-based queries when a geocoder is configured. A
// geocoding failure falls back to the name form.
func (s *Service) resolve(ctx context.Context, q Query) Query {
	if q.ByCoords() || s.geocoder == nil {
		return q
	}
	coords, err := s.geocoder.Geocode(ctx, q.Search.City)
	if err != nil {
		s.log.Debug("geocoding failed; using name lookup",
			zap.String("city", q.Search.City), zap.Error(err))
		return q
	}
	q.Search.Coords = &coords
	return q
}

// Suggest returns city predictions for input.
func (s *Service) Suggest(ctx context.Context, input, sessionToken string) ([]Prediction, error) {
	if s.suggester == nil {
		return nil, ErrNoSuggester
	}
	preds, err := s.suggester.Autocomplete(ctx, strings.TrimSpace(input), sessionToken)
	if err != nil {
		s.log.Warn("autocomplete failed", zap.String("input", input), zap.Error(err))
		return nil, err
	}
	return preds, nil
}

func validateQuery(q Query) error {
	if q.Search.Coords == nil && strings.TrimSpace(q.Search.City) == "" {
		return ErrInvalidQuery
	}
	if q.Unit != "" && !q.Unit.Valid() {
		return fmt.Errorf("unsupported units %q", q.Unit)
	}
	return nil
}

func searchMode(q Query) string {
	if q.ByCoords() {
		return "coords"
	}
	return "city"
}
