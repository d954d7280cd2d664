package suggest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/i474232898/weather-search/internal/async"
	"github.com/i474232898/weather-search/internal/weather"
)

var (
	// ErrNotReady is returned by Lookup before Load has completed.
	ErrNotReady = errors.New("suggestion provider not ready")
	// ErrLookupFailed wraps every provider-side failure.
	ErrLookupFailed = errors.New("suggestion lookup failed")
)

// CitiesType restricts predictions to cities.
const CitiesType = "(cities)"

// Option is one selectable suggestion.
type Option struct {
	Display string `json:"display"`
	Value   string `json:"value"`
	ID      string `json:"id"`
}

// Status is the provider's result status.
type Status string

const (
	StatusOK          Status = "OK"
	StatusZeroResults Status = "ZERO_RESULTS"
)

// Request is what the provider's prediction call takes.
type Request struct {
	Input string
	Types []string
}

// Callback receives predictions (possibly nil) and a status.
type Callback func(preds []weather.Prediction, status Status)

// Service is the provider's native, callback-shaped prediction API.
type Service interface {
	GetPlacePredictions(ctx context.Context, req Request, cb Callback)
}

// Loader performs the provider's load and ready handshake and hands back a
// usable Service.
type Loader interface {
	Load(ctx context.Context) (Service, error)
}

// Adapter exposes a Service through futures so callers never see the
// provider's callback shape.
type Adapter struct {
	loader Loader

	mu      sync.RWMutex
	service Service
}

// NewAdapter returns an adapter that becomes usable after Load.
func NewAdapter(loader Loader) *Adapter {
	return &Adapter{loader: loader}
}

// Load runs the handshake once; repeated calls after success are no-ops.
func (a *Adapter) Load(ctx context.Context) error {
	if a.Ready() {
		return nil
	}
	svc, err := a.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load suggestion provider: %w", err)
	}
	a.mu.Lock()
	a.service = svc
	a.mu.Unlock()
	return nil
}

// Ready reports whether the handshake has completed.
func (a *Adapter) Ready() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.service != nil
}

// Lookup asks the provider for city suggestions. The future resolves with
// ErrNotReady before Load, with an error wrapping ErrLookupFailed on
// provider failure, and with an empty slice when nothing matched.
func (a *Adapter) Lookup(ctx context.Context, input string) *async.Future[[]Option] {
	a.mu.RLock()
	svc := a.service
	a.mu.RUnlock()
	if svc == nil {
		return async.Resolved[[]Option](nil, ErrNotReady)
	}

	f := async.NewFuture[[]Option]()
	svc.GetPlacePredictions(ctx, Request{Input: input, Types: []string{CitiesType}}, func(preds []weather.Prediction, status Status) {
		switch status {
		case StatusOK, StatusZeroResults:
			f.Resolve(toOptions(preds), nil)
		default:
			f.Resolve(nil, fmt.Errorf("%w: status %s", ErrLookupFailed, status))
		}
	})

	go func() {
		select {
		case <-f.Done():
		case <-ctx.Done():
			f.Resolve(nil, ctx.Err())
		}
	}()
	return f
}

func toOptions(preds []weather.Prediction) []Option {
	opts := make([]Option, 0, len(preds))
	for _, p := range preds {
		value := p.Description
		if len(p.Terms) > 0 {
			value = p.Terms[0].Value
		}
		opts = append(opts, Option{
			Display: p.Description,
			Value:   value,
			ID:      p.PlaceID,
		})
	}
	return opts
}
