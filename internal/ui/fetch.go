package ui

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/i474232898/weather-search/internal/async"
	"github.com/i474232898/weather-search/internal/weather"
)

// FetchStatus is the fetch controller's state.
type FetchStatus string

const (
	StatusIdle     FetchStatus = "idle"
	StatusFetching FetchStatus = "fetching"
	StatusSuccess  FetchStatus = "success"
	StatusError    FetchStatus = "error"
)

// Fetcher issues a single weather request.
type Fetcher interface {
	Search(ctx context.Context, q weather.Query) (weather.Payload, error)
}

// FetchState is a snapshot of the fetch controller.
type FetchState struct {
	Status  FetchStatus
	Payload *weather.Payload
	Err     *AppError
	Query   weather.Query
	Seq     uint64
}

// FetchController issues one request per query change and applies only the
// response belonging to the latest query. Earlier requests are never
// aborted; their results are dropped when they land.
type FetchController struct {
	fetcher  Fetcher
	onChange func(FetchState)
	log      *zap.Logger

	seq      async.Sequence
	inflight sync.WaitGroup

	mu       sync.Mutex
	state    FetchState
	hasQuery bool
}

// NewFetchController returns an idle controller. onChange, if set, is called
// with the settled state after each applied response, outside the lock.
func NewFetchController(f Fetcher, onChange func(FetchState), log *zap.Logger) *FetchController {
	if log == nil {
		log = zap.NewNop()
	}
	return &FetchController{
		fetcher:  f,
		onChange: onChange,
		log:      log,
		state:    FetchState{Status: StatusIdle},
	}
}

// Trigger starts a fetch for q unless q is the current query and it has not
// failed. It reports whether a request was issued.
func (c *FetchController) Trigger(ctx context.Context, q weather.Query) bool {
	c.mu.Lock()
	if c.hasQuery && c.state.Query.Key() == q.Key() && c.state.Status != StatusError {
		c.mu.Unlock()
		return false
	}

	n := c.seq.Next()
	c.hasQuery = true
	c.state.Status = StatusFetching
	c.state.Query = q
	c.state.Seq = n
	c.inflight.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.inflight.Done()
		p, err := c.fetcher.Search(ctx, q)
		c.apply(n, q, p, err)
	}()
	return true
}

func (c *FetchController) apply(n uint64, q weather.Query, p weather.Payload, err error) {
	c.mu.Lock()
	if !c.seq.IsCurrent(n) {
		c.mu.Unlock()
		c.log.Debug("dropping stale weather response", zap.String("query", q.Key()), zap.Uint64("seq", n))
		return
	}

	if err != nil {
		c.log.Warn("weather fetch failed", zap.String("query", q.Key()), zap.Error(err))
		c.state.Status = StatusError
		c.state.Payload = nil
		c.state.Err = NewFetchFailed()
	} else {
		c.state.Status = StatusSuccess
		c.state.Payload = &p
		c.state.Err = nil
	}
	snapshot := c.state
	c.mu.Unlock()

	c.notify(snapshot)
}

func (c *FetchController) notify(s FetchState) {
	if c.onChange != nil {
		c.onChange(s)
	}
}

// State returns the current snapshot.
func (c *FetchController) State() FetchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Wait blocks until every issued request has completed.
func (c *FetchController) Wait() {
	c.inflight.Wait()
}
