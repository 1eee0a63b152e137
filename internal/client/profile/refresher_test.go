package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/postkeeper/internal/logging"
)

type countingFetcher struct {
	calls atomic.Int32
	err   error
}

func (f *countingFetcher) Fetch(ctx context.Context) (*Profile, error) {
	n := f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &Profile{FirstName: fmt.Sprintf("user%d", n)}, nil
}

type manualClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func TestCurrent_CachesUntilStale(t *testing.T) {
	f := &countingFetcher{}
	clk := &manualClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := NewRefresher(f, time.Hour, 5*time.Minute, logging.Nop())
	r.now = clk.Now
	ctx := context.Background()

	p, err := r.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user1", p.FirstName)

	clk.Advance(4 * time.Minute)
	p, err = r.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user1", p.FirstName)
	assert.Equal(t, int32(1), f.calls.Load())

	clk.Advance(2 * time.Minute)
	p, err = r.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user2", p.FirstName)
}

func TestRefresh_ErrorKeepsPreviousProfile(t *testing.T) {
	f := &countingFetcher{}
	r := NewRefresher(f, 0, 0, logging.Nop())
	ctx := context.Background()

	_, err := r.Refresh(ctx)
	require.NoError(t, err)

	f.err = errors.New("offline")
	_, err = r.Refresh(ctx)
	require.Error(t, err)

	p, _, ok := r.Cached()
	require.True(t, ok)
	assert.Equal(t, "user1", p.FirstName)
}

func TestNewRefresher_Defaults(t *testing.T) {
	r := NewRefresher(&countingFetcher{}, 0, 0, logging.Nop())
	assert.Equal(t, DefaultRefreshInterval, r.interval)
	assert.Equal(t, DefaultStaleTime, r.staleTime)

	_, _, ok := r.Cached()
	assert.False(t, ok)
}

func TestStart_FetchesImmediatelyAndStops(t *testing.T) {
	f := &countingFetcher{}
	r := NewRefresher(f, time.Hour, time.Minute, logging.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)

	require.Eventually(t, func() bool {
		_, _, ok := r.Cached()
		return ok
	}, 2*time.Second, 10*time.Millisecond)

	r.Stop()
	assert.GreaterOrEqual(t, f.calls.Load(), int32(1))
}

type blockingFetcher struct {
	started chan struct{}
	release chan struct{}
	done    atomic.Bool
}

func (f *blockingFetcher) Fetch(ctx context.Context) (*Profile, error) {
	close(f.started)
	<-f.release
	f.done.Store(true)
	return &Profile{FirstName: "slow"}, nil
}

func TestStop_WaitsForInitialFetch(t *testing.T) {
	f := &blockingFetcher{started: make(chan struct{}), release: make(chan struct{})}
	r := NewRefresher(f, time.Hour, time.Minute, logging.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Start(ctx)
	<-f.started

	stopped := make(chan struct{})
	go func() {
		r.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while the first fetch was still running")
	case <-time.After(100 * time.Millisecond):
	}

	close(f.release)

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return after the first fetch finished")
	}
	assert.True(t, f.done.Load())
}
