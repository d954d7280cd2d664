package ui

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/weather-search/internal/geo"
	"github.com/i474232898/weather-search/internal/view"
	"github.com/i474232898/weather-search/internal/weather"
)

// HomeConfig wires a Home screen.
type HomeConfig struct {
	Fetcher  Fetcher
	Lookup   Lookuper
	Locator  geo.Locator
	Map      view.MapConfig
	Debounce time.Duration
	// Default is searched on Mount; an empty city means weather.DefaultCity.
	Default weather.Query
	Log     *zap.Logger
}

// Home composes the search controller, the fetch controller and the single
// error slot into one screen.
type Home struct {
	ctx    context.Context
	fetch  *FetchController
	search *SearchController
	log    *zap.Logger
	mapCfg view.MapConfig

	mu       sync.Mutex
	query    weather.Query
	err      *AppError
	overlays view.OverlaySet
}

// NewHome builds the screen. Nothing is fetched until Mount.
func NewHome(ctx context.Context, cfg HomeConfig) *Home {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	def := cfg.Default
	if def.Search.City == "" && def.Search.Coords == nil {
		def.Search.City = weather.DefaultCity
	}
	if !def.Unit.Valid() {
		def.Unit = weather.UnitsImperial
	}

	h := &Home{
		ctx:      ctx,
		log:      cfg.Log,
		mapCfg:   cfg.Map,
		query:    def,
		overlays: view.OverlaySet{},
	}
	h.fetch = NewFetchController(cfg.Fetcher, h.onFetched, cfg.Log)
	h.search = NewSearchController(ctx, SearchConfig{
		Lookup:   cfg.Lookup,
		Units:    NewUnitToggle(def.Unit),
		Locator:  cfg.Locator,
		Debounce: cfg.Debounce,
		Initial:  def,
		Current:  h.Query,
		OnSearch: h.SetQuery,
		OnError:  h.SetError,
		Log:      cfg.Log,
	})
	return h
}

// Mount issues the request for the initial query.
func (h *Home) Mount() {
	h.fetch.Trigger(h.ctx, h.Query())
}

// Search exposes the search controller.
func (h *Home) Search() *SearchController {
	return h.search
}

// Fetch exposes the fetch controller.
func (h *Home) Fetch() *FetchController {
	return h.fetch
}

// Query returns the query parameters in effect.
func (h *Home) Query() weather.Query {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.query
}

// SetQuery replaces the query parameters, which fires a fetch when they
// differ from the current ones.
func (h *Home) SetQuery(q weather.Query) {
	h.mu.Lock()
	h.query = q
	h.mu.Unlock()
	h.fetch.Trigger(h.ctx, q)
}

// SetError fills the error slot, replacing whatever was there.
func (h *Home) SetError(e *AppError) {
	h.mu.Lock()
	h.err = e
	h.mu.Unlock()
}

// Error returns the current error, if any.
func (h *Home) Error() *AppError {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// ToggleOverlay flips a map overlay.
func (h *Home) ToggleOverlay(l view.Layer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.overlays.Toggle(l)
}

func (h *Home) onFetched(s FetchState) {
	if s.Seq != h.fetch.State().Seq {
		return
	}
	switch s.Status {
	case StatusSuccess:
		h.mu.Lock()
		h.err = nil
		h.mu.Unlock()
		if s.Payload != nil {
			h.search.SyncCity(s.Payload.Name)
		}
	case StatusError:
		h.SetError(s.Err)
	}
}

// Page assembles the render input for the current state.
func (h *Home) Page() view.Page {
	ss := h.search.State()
	fs := h.fetch.State()

	box := view.SearchBox{
		Text:           ss.SearchText,
		Open:           ss.SuggestionsOpen,
		SubmitDisabled: ss.SubmitDisabled,
	}
	for _, o := range ss.Options {
		box.Options = append(box.Options, o.Display)
	}
	for _, u := range h.search.Units().Items() {
		box.Units = append(box.Units, view.UnitEntry{Label: u.Label, Active: u.Active})
	}

	page := view.Page{
		Search:   box,
		Fetching: fs.Status == StatusFetching,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		page.Err = &view.ErrorBox{Code: h.err.Code, Message: h.err.Message}
		return page
	}
	if fs.Payload != nil {
		page.Payload = fs.Payload
		page.Map = view.RenderMap(&fs.Payload.Coords, h.mapCfg, h.overlays)
	}
	return page
}
