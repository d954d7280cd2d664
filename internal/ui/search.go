package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/weather-search/internal/async"
	"github.com/i474232898/weather-search/internal/geo"
	"github.com/i474232898/weather-search/internal/suggest"
	"github.com/i474232898/weather-search/internal/weather"
)

// DefaultDebounce is the quiet interval before a suggestion lookup fires.
const DefaultDebounce = 500 * time.Millisecond

// Lookuper is the future-returning suggestion API (suggest.Adapter).
type Lookuper interface {
	Lookup(ctx context.Context, input string) *async.Future[[]suggest.Option]
}

// SearchState is a snapshot of the search input.
type SearchState struct {
	SearchText      string
	SelectedText    string
	SuggestionsOpen bool
	SubmitDisabled  bool
	// Options is nil when there is no suggestion list to show.
	Options []suggest.Option
}

// SearchConfig wires a SearchController.
type SearchConfig struct {
	Lookup   Lookuper
	Units    *UnitToggle
	Locator  geo.Locator
	Debounce time.Duration
	// Initial seeds the input and the selection.
	Initial weather.Query
	// Current returns the query parameters in effect; geolocation extends it.
	Current  func() weather.Query
	OnSearch func(weather.Query)
	OnError  func(*AppError)
	Log      *zap.Logger
}

// SearchController owns the typed query, the suggestion list and the
// selection. Submission is only possible once a suggestion was chosen.
type SearchController struct {
	cfg      SearchConfig
	debounce *async.Debouncer
	seq      async.Sequence
	ctx      context.Context

	mu    sync.Mutex
	state SearchState
}

// NewSearchController returns a controller whose lookups run under ctx.
func NewSearchController(ctx context.Context, cfg SearchConfig) *SearchController {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Units == nil {
		cfg.Units = NewUnitToggle(cfg.Initial.Unit)
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	return &SearchController{
		cfg:      cfg,
		debounce: async.NewDebouncer(cfg.Debounce),
		ctx:      ctx,
		state: SearchState{
			SearchText:   cfg.Initial.Search.City,
			SelectedText: cfg.Initial.Search.City,
		},
	}
}

// Change reflects typed text. It disables submission, discards the current
// suggestions and, for non-empty text, schedules a debounced lookup. Results
// of lookups issued for earlier text are dropped; empty text also cancels
// the pending one.
func (c *SearchController) Change(text string) {
	c.mu.Lock()
	c.state.SearchText = text
	c.state.SubmitDisabled = true
	c.state.Options = nil
	c.state.SuggestionsOpen = false
	n := c.seq.Next()
	c.mu.Unlock()

	if text == "" {
		c.debounce.Cancel()
		return
	}
	c.debounce.Trigger(func() { c.lookup(text, n) })
}

func (c *SearchController) lookup(text string, n uint64) {
	if !c.isCurrent(n) {
		return
	}
	opts, err := c.cfg.Lookup.Lookup(c.ctx, text).Await(c.ctx)

	c.mu.Lock()
	if !c.seq.IsCurrent(n) {
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.mu.Unlock()
		switch {
		case errors.Is(err, suggest.ErrNotReady):
			c.cfg.Log.Debug("suggestion provider not ready; lookup skipped", zap.String("input", text))
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		default:
			c.cfg.Log.Warn("suggestion lookup failed", zap.String("input", text), zap.Error(err))
			c.reportError(NewLookupFailed())
		}
		return
	}

	if len(opts) == 0 {
		c.state.Options = nil
	} else {
		c.state.Options = opts
	}
	c.state.SuggestionsOpen = true
	c.mu.Unlock()
}

// Select picks the suggestion with id. The display text becomes the search
// value, submission is enabled and the list closes. Unknown ids are ignored.
func (c *SearchController) Select(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, o := range c.state.Options {
		if o.ID == id {
			c.state.SearchText = o.Display
			c.state.SelectedText = o.Display
			c.state.SubmitDisabled = false
			c.state.SuggestionsOpen = false
			c.state.Options = nil
			return true
		}
	}
	return false
}

// Submit issues a search for the selected suggestion. It is a no-op while
// submission is disabled or nothing is selected.
func (c *SearchController) Submit() (weather.Query, bool) {
	c.mu.Lock()
	if c.state.SubmitDisabled || c.state.SelectedText == "" {
		c.mu.Unlock()
		return weather.Query{}, false
	}
	q := weather.Query{
		Search: weather.Search{City: c.state.SelectedText},
		Unit:   c.cfg.Units.Unit(),
	}
	c.mu.Unlock()

	if c.cfg.OnSearch != nil {
		c.cfg.OnSearch(q)
	}
	return q, true
}

// Clear empties the input and closes the suggestion list.
func (c *SearchController) Clear() {
	c.Change("")
}

// ToggleOpen opens or closes the suggestion list.
func (c *SearchController) ToggleOpen() {
	c.mu.Lock()
	c.state.SuggestionsOpen = !c.state.SuggestionsOpen
	c.mu.Unlock()
}

// SetUnit forwards to the unit toggle.
func (c *SearchController) SetUnit(u weather.Units) {
	c.cfg.Units.Set(u)
}

// Units exposes the toggle for rendering.
func (c *SearchController) Units() *UnitToggle {
	return c.cfg.Units
}

// SyncCity adopts the place name of a fresh payload when the input does not
// already mention it, as happens after a geolocation search.
func (c *SearchController) SyncCity(name string) {
	if name == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.Contains(c.state.SearchText, name) {
		return
	}
	c.state.SearchText = name
	c.state.SelectedText = name
}

// Locate searches by the user's current position, keeping the rest of the
// current query parameters.
func (c *SearchController) Locate(ctx context.Context) {
	if c.cfg.Locator == nil {
		return
	}
	coords, err := c.cfg.Locator.Locate(ctx)
	if err != nil {
		c.reportError(NewLocationFailed(err.Error()))
		return
	}

	q := c.cfg.Initial
	if c.cfg.Current != nil {
		q = c.cfg.Current()
	}
	q.Search.Coords = &coords
	if c.cfg.OnSearch != nil {
		c.cfg.OnSearch(q)
	}
}

// State returns the current snapshot.
func (c *SearchController) State() SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	if s.Options != nil {
		s.Options = append([]suggest.Option(nil), s.Options...)
	}
	return s
}

func (c *SearchController) isCurrent(n uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq.IsCurrent(n)
}

func (c *SearchController) reportError(e *AppError) {
	if c.cfg.OnError != nil {
		c.cfg.OnError(e)
	}
}
