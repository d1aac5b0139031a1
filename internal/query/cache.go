// Package query is the fetch orchestration layer between pages and their
// data sources.
//
// A Client caches one result per key. Results stay fresh for StaleTime; an
// entry nobody has read for GCTime is evicted by the janitor (Run).
// Concurrent fetches of the same key share a single call, so a refresh issued
// while a fetch is in flight joins it instead of queueing behind it. Failed
// fetches are retried Retry times with exponential backoff.
//
// The shared call runs detached from the caller that started it: a caller
// giving up (context done) stops waiting but does not cancel the fetch for
// everyone else. Each call is bounded by FetchTimeout instead.
package query

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultStaleTime    = 5 * time.Minute
	DefaultGCTime       = 10 * time.Minute
	DefaultFetchTimeout = 30 * time.Second

	maxRetryDelay = 30 * time.Second
)

var (
	// ErrClosed is returned by every fetch after Close.
	ErrClosed = errors.New("query: client closed")
	// ErrPanic wraps a panic recovered from a fetch function.
	ErrPanic = errors.New("query: fetch panicked")
)

// FetchFunc loads the value for a key.
type FetchFunc func(ctx context.Context) (any, error)

type Options struct {
	StaleTime    time.Duration
	GCTime       time.Duration
	Retry        int
	FetchTimeout time.Duration

	// RetryDelay returns the wait before retry number attempt (0-based).
	// Defaults to 1s doubling per attempt, capped at 30s.
	RetryDelay func(attempt int) time.Duration

	Logger zerolog.Logger
	Now    func() time.Time
}

// Snapshot is a read-only view of one cache entry.
type Snapshot struct {
	Value     any
	Err       error
	HasData   bool
	Fetching  bool
	Stale     bool
	UpdatedAt time.Time
}

type entry struct {
	value     any
	err       error
	hasData   bool
	fetching  bool
	updatedAt time.Time
	readAt    time.Time
}

type Client struct {
	opts  Options
	log   zerolog.Logger
	group singleflight.Group

	mu      sync.Mutex
	entries map[string]*entry
	closed  bool
	done    chan struct{}
}

func New(opts Options) *Client {
	if opts.StaleTime <= 0 {
		opts.StaleTime = DefaultStaleTime
	}
	if opts.GCTime <= 0 {
		opts.GCTime = DefaultGCTime
	}
	if opts.Retry < 0 {
		opts.Retry = 0
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.RetryDelay == nil {
		opts.RetryDelay = exponentialDelay
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Client{
		opts:    opts,
		log:     opts.Logger.With().Str("component", "query").Logger(),
		entries: make(map[string]*entry),
		done:    make(chan struct{}),
	}
}

func exponentialDelay(attempt int) time.Duration {
	d := time.Second << attempt
	if d <= 0 || d > maxRetryDelay {
		return maxRetryDelay
	}
	return d
}

// Peek reports the cached state of key without fetching.
func (c *Client) Peek(key string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Snapshot{}
	}
	now := c.opts.Now()
	e.readAt = now
	return Snapshot{
		Value:     e.value,
		Err:       e.err,
		HasData:   e.hasData,
		Fetching:  e.fetching,
		Stale:     !e.hasData || now.Sub(e.updatedAt) >= c.opts.StaleTime,
		UpdatedAt: e.updatedAt,
	}
}

// Fetch returns the cached value for key while it is fresh, and otherwise
// loads it with fn.
func (c *Client) Fetch(ctx context.Context, key string, fn FetchFunc) (any, error) {
	if snap := c.Peek(key); snap.HasData && snap.Err == nil && !snap.Stale {
		return snap.Value, nil
	}
	return c.Refetch(ctx, key, fn)
}

// Refetch loads key with fn regardless of freshness. A call already in
// flight for key is joined rather than repeated.
func (c *Client) Refetch(ctx context.Context, key string, fn FetchFunc) (any, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	c.mu.Unlock()

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return c.run(fetchCtx, key, fn)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Invalidate marks key stale so the next Fetch reloads it.
func (c *Client) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		e.updatedAt = time.Time{}
	}
}

func (c *Client) run(ctx context.Context, key string, fn FetchFunc) (any, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	e.fetching = true
	e.readAt = c.opts.Now()
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.opts.FetchTimeout)
	defer cancel()

	var (
		val any
		err error
	)
	for attempt := 0; ; attempt++ {
		val, err = c.call(ctx, key, fn)
		if err == nil || attempt >= c.opts.Retry || c.isClosed() {
			break
		}
		delay := c.opts.RetryDelay(attempt)
		c.log.Warn().Err(err).Str("key", key).Int("attempt", attempt+1).Dur("delay", delay).Msg("fetch failed, retrying")

		t := time.NewTimer(delay)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			err = fmt.Errorf("query: %s: %w", key, ctx.Err())
		case <-c.done:
			t.Stop()
			err = ErrClosed
		}
		if ctx.Err() != nil || c.isClosed() {
			break
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	e.fetching = false
	if c.closed {
		err = ErrClosed
	}
	if err != nil {
		e.err = err
		c.log.Error().Err(err).Str("key", key).Msg("fetch failed")
		return nil, err
	}
	e.value = val
	e.err = nil
	e.hasData = true
	e.updatedAt = c.opts.Now()
	return val, nil
}

// call runs fn once, turning a panic into an error wrapping ErrPanic.
func (c *Client) call(ctx context.Context, key string, fn FetchFunc) (val any, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Str("key", key).Interface("panic", r).Bytes("stack", debug.Stack()).Msg("fetch panicked")
			val, err = nil, fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn(ctx)
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Run evicts idle entries until ctx is done or the client is closed.
func (c *Client) Run(ctx context.Context) error {
	interval := c.opts.GCTime / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.done:
			return nil
		case <-ticker.C:
			if n := c.Collect(); n > 0 {
				c.log.Debug().Int("evicted", n).Msg("cache gc")
			}
		}
	}
}

// Collect evicts entries that are not being fetched and have not been read
// for GCTime. It returns the number of evicted entries.
func (c *Client) Collect() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.opts.Now()
	n := 0
	for key, e := range c.entries {
		if e.fetching || now.Sub(e.readAt) < c.opts.GCTime {
			continue
		}
		delete(c.entries, key)
		n++
	}
	return n
}

// Len reports the number of cached entries.
func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close stops the janitor and fails every later fetch with ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	close(c.done)
	return nil
}
