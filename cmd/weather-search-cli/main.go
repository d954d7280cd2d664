package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/weather-search/internal/async"
	"github.com/i474232898/weather-search/internal/client"
	"github.com/i474232898/weather-search/internal/config"
	"github.com/i474232898/weather-search/internal/geo"
	"github.com/i474232898/weather-search/internal/logging"
	"github.com/i474232898/weather-search/internal/suggest"
	"github.com/i474232898/weather-search/internal/ui"
	"github.com/i474232898/weather-search/internal/view"
	"github.com/i474232898/weather-search/internal/weather"
)

const help = `commands:
  <text> | type <text>   type into the search box
  select <n>             choose suggestion n
  search                 search the selected city
  unit imperial|metric   switch units
  locate                 use current location (HOME_LAT/HOME_LON)
  clear                  clear the search box
  toggle                 open/close the suggestion list
  layer <name>           toggle a map overlay (precipitation, temperature, wind, cloud)
  show                   redraw
  quit`

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	logPath := os.Getenv("LOG_FILE")
	if logPath == "" {
		logPath = filepath.Join(os.TempDir(), "weather-search-cli.log")
	}
	log, err := logging.NewFile("weather-search-cli", cfg.LogLevel, logPath)
	if err != nil {
		log = zap.NewNop()
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend := client.New(cfg.BackendURL, cfg.HTTPTimeout)
	adapter := suggest.NewAdapter(suggest.RemoteLoader{Client: backend})

	// Suggestions stay disabled until the handshake completes.
	loaded := async.Go(ctx, func(ctx context.Context) (bool, error) {
		return true, adapter.Load(ctx)
	})
	loaded.Then(func(_ bool, err error) {
		if err != nil {
			log.Warn("suggestion provider failed to load", zap.Error(err))
			return
		}
		log.Info("suggestion provider ready")
	})

	home := ui.NewHome(ctx, ui.HomeConfig{
		Fetcher:  backend,
		Lookup:   adapter,
		Locator:  geo.StaticLocator{Position: cfg.Home},
		Map:      view.MapConfig{MapboxToken: cfg.MapboxAPIKey, OpenWeatherID: cfg.OpenWeatherAPIKey},
		Debounce: cfg.Debounce,
		Default:  cfg.DefaultQuery,
		Log:      log,
	})
	home.Mount()
	home.Fetch().Wait()

	r := &repl{home: home, out: os.Stdout, settle: cfg.Debounce + 500*time.Millisecond}
	r.draw()
	fmt.Fprintln(r.out, help)

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	for {
		fmt.Fprint(r.out, "> ")
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok || !r.handle(ctx, line) {
				return
			}
		}
	}
}

type repl struct {
	home   *ui.Home
	out    io.Writer
	settle time.Duration
}

// handle runs one command and reports whether to keep going.
func (r *repl) handle(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	search := r.home.Search()

	switch strings.ToLower(cmd) {
	case "":
		return true
	case "quit", "exit":
		return false
	case "help":
		fmt.Fprintln(r.out, help)
		return true
	case "show":
	case "type":
		r.typeText(arg)
		return true
	case "select":
		n, err := strconv.Atoi(arg)
		opts := search.State().Options
		if err != nil || n < 1 || n > len(opts) {
			fmt.Fprintln(r.out, "no such suggestion")
			return true
		}
		search.Select(opts[n-1].ID)
	case "search":
		if _, ok := search.Submit(); !ok {
			fmt.Fprintln(r.out, "select a suggestion first")
			return true
		}
		r.home.Fetch().Wait()
	case "unit":
		u, err := weather.ParseUnits(arg)
		if err != nil || arg == "" {
			fmt.Fprintln(r.out, "unit must be imperial or metric")
			return true
		}
		search.SetUnit(u)
	case "locate":
		search.Locate(ctx)
		r.home.Fetch().Wait()
	case "clear":
		search.Clear()
	case "toggle":
		search.ToggleOpen()
	case "layer":
		l, ok := view.ParseLayer(arg)
		if !ok {
			fmt.Fprintln(r.out, "unknown layer")
			return true
		}
		r.home.ToggleOverlay(l)
	default:
		r.typeText(line)
		return true
	}

	r.draw()
	return true
}

// typeText feeds text to the search box and waits out the debounce so the
// suggestions are on screen when the prompt returns.
func (r *repl) typeText(text string) {
	r.home.Search().Change(text)
	if text != "" {
		time.Sleep(r.settle)
	}
	r.draw()
}

func (r *repl) draw() {
	fmt.Fprintln(r.out)
	for _, l := range view.RenderPage(r.home.Page()) {
		fmt.Fprintln(r.out, l)
	}
}
