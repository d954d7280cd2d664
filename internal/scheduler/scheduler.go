package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/weather-search/internal/weather"
)

// Refresher is the part of weather.Service the scheduler drives.
type Refresher interface {
	Refresh(ctx context.Context, q weather.Query) error
	Prune(ctx context.Context) int
}

// Scheduler keeps a set of queries warm in the payload cache and prunes
// expired entries.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   Refresher
	queries   []weather.Query
	interval  time.Duration
	log       *zap.Logger
}

// New creates a new Scheduler.
func New(queries []weather.Query, interval time.Duration, service Refresher, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		queries:   queries,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the warm-up and prune jobs and starts the scheduler. The
// warm-up job runs once immediately.
func (s *Scheduler) Start() error {
	interval := s.interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	if len(s.queries) > 0 {
		if _, err := s.scheduler.Every(interval).Do(s.Warm); err != nil {
			return err
		}
	} else {
		s.log.Info("scheduler: no queries configured; skipping warm-up job")
	}

	if _, err := s.scheduler.Every(interval).WaitForSchedule().Do(s.prune); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Warm refreshes every configured query concurrently.
func (s *Scheduler) Warm() {
	var wg sync.WaitGroup
	for _, q := range s.queries {
		wg.Add(1)
		go func(q weather.Query) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := s.service.Refresh(ctx, q); err != nil {
				s.log.Warn("scheduler: refresh failed", zap.String("query", q.Key()), zap.Error(err))
			}
		}(q)
	}
	wg.Wait()
	s.log.Debug("scheduler: warm-up completed", zap.Int("queries", len(s.queries)))
}

func (s *Scheduler) prune() {
	if n := s.service.Prune(context.Background()); n > 0 {
		s.log.Debug("scheduler: pruned cache", zap.Int("entries", n))
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
