package profile

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrijs2005/postkeeper/internal/logging"
)

const (
	DefaultRefreshInterval = 10 * time.Second
	DefaultStaleTime       = 5 * time.Minute
)

// Refresher caches the latest profile and replaces it on a fixed interval.
type Refresher struct {
	fetcher   Fetcher
	logger    logging.Logger
	interval  time.Duration
	staleTime time.Duration
	now       func() time.Time

	cron    *cron.Cron
	initial sync.WaitGroup

	mu        sync.RWMutex
	current   *Profile
	fetchedAt time.Time
}

func NewRefresher(fetcher Fetcher, interval, staleTime time.Duration, logger logging.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}
	return &Refresher{
		fetcher:   fetcher,
		logger:    logger,
		interval:  interval,
		staleTime: staleTime,
		now:       time.Now,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}
}

// Start fetches a first profile in the background and schedules periodic
// refreshes until Stop is called or ctx is done.
func (r *Refresher) Start(ctx context.Context) {
	job := func() {
		if _, err := r.Refresh(ctx); err != nil {
			r.logger.Warn(ctx, "profile refresh failed", "error", err)
		}
	}

	r.cron.Schedule(cron.Every(r.interval), cron.FuncJob(job))
	r.cron.Start()

	r.initial.Add(1)
	go func() {
		defer r.initial.Done()
		job()
	}()

	go func() {
		<-ctx.Done()
		r.cron.Stop()
	}()
}

// Stop cancels the schedule and waits for running refreshes, including the
// first one, to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
	r.initial.Wait()
}

// Refresh fetches a new profile and caches it.
func (r *Refresher) Refresh(ctx context.Context) (*Profile, error) {
	p, err := r.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.current = p
	r.fetchedAt = r.now()
	r.mu.Unlock()

	r.logger.Debug(ctx, "profile refreshed", "name", p.FullName())
	return p, nil
}

// Current returns the cached profile, fetching a new one when nothing is
// cached or the cached one is older than the stale time.
func (r *Refresher) Current(ctx context.Context) (*Profile, error) {
	r.mu.RLock()
	p, at := r.current, r.fetchedAt
	r.mu.RUnlock()

	if p != nil && r.now().Sub(at) < r.staleTime {
		return p, nil
	}
	return r.Refresh(ctx)
}

// Cached returns the cached profile without fetching.
func (r *Refresher) Cached() (*Profile, time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, r.fetchedAt, r.current != nil
}
