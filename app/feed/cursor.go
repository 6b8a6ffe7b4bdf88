// Package feed materializes the persisted posts collection into the
// displayed posts list one page at a time.
package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"blogspace/app/metrics"
	"blogspace/app/models"
	"blogspace/app/store"

	"go.uber.org/zap"
)

// DefaultPageSize is the number of posts added by each LoadMore.
const DefaultPageSize = 10

var (
	ErrLoadInProgress = errors.New("feed: a load is already in progress")
	ErrNoMorePosts    = errors.New("feed: no more posts to load")
)

// Source is the full posts collection a page is cut from.
type Source interface {
	List(ctx context.Context) ([]models.Post, error)
}

// Options configures a Cursor.
type Options struct {
	PageSize int
	// Latency is waited before each page is read. It stands in for the
	// round trip of a remote paginated fetch.
	Latency time.Duration
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// Result describes a completed load.
type Result struct {
	Loaded  int  `json:"loaded"`
	Page    int  `json:"page"`
	HasMore bool `json:"hasMore"`
}

// Pending is the handle of an in-flight load.
type Pending struct {
	done   chan struct{}
	result Result
	err    error
}

// Done is closed once the load has finished and the store is updated.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the load finishes or ctx is done. Giving up on the wait
// does not cancel the load itself.
func (p *Pending) Wait(ctx context.Context) (Result, error) {
	select {
	case <-p.done:
		return p.result, p.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Cursor tracks (page, hasMore) in the store's posts slice and allows a
// single load at a time.
type Cursor struct {
	source Source
	store  *store.Store
	opts   Options
	mutex  sync.Mutex
}

// NewCursor creates a cursor over source that updates st.
func NewCursor(source Source, st *store.Store, opts Options) *Cursor {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Cursor{source: source, store: st, opts: opts}
}

// PageSize returns the configured page size.
func (c *Cursor) PageSize() int {
	return c.opts.PageSize
}

// LoadMore starts loading the next page. It returns ErrLoadInProgress or
// ErrNoMorePosts without touching any state when a load is running or the
// collection is exhausted. Otherwise loading is set and the page is fetched
// asynchronously; cancelling ctx aborts the fetch and clears loading.
func (c *Cursor) LoadMore(ctx context.Context) (*Pending, error) {
	c.mutex.Lock()
	state := c.store.Posts()
	if state.Loading {
		c.mutex.Unlock()
		c.count("rejected")
		return nil, ErrLoadInProgress
	}
	if !state.HasMore {
		c.mutex.Unlock()
		c.count("rejected")
		return nil, ErrNoMorePosts
	}
	c.store.Dispatch(store.SetLoading{Loading: true})
	c.mutex.Unlock()

	p := &Pending{done: make(chan struct{})}
	go c.load(ctx, state.Page, p)
	return p, nil
}

// Reset empties the displayed posts and rewinds to the first page.
func (c *Cursor) Reset() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if c.store.Posts().Loading {
		return ErrLoadInProgress
	}
	c.store.Dispatch(store.ResetFeed{})
	return nil
}

func (c *Cursor) load(ctx context.Context, page int, p *Pending) {
	defer close(p.done)
	defer c.store.Dispatch(store.SetLoading{Loading: false})

	result, err := c.fetch(ctx, page)
	p.result, p.err = result, err

	switch {
	case err == nil && result.Loaded > 0:
		c.count("loaded")
	case err == nil:
		c.count("exhausted")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.count("cancelled")
	default:
		c.count("failed")
		c.opts.Logger.Error("failed to load posts page", zap.Int("page", page), zap.Error(err))
	}
}

func (c *Cursor) fetch(ctx context.Context, page int) (Result, error) {
	if c.opts.Latency > 0 {
		timer := time.NewTimer(c.opts.Latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return Result{}, ctx.Err()
		}
	}

	all, err := c.source.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read posts: %w", err)
	}

	window := Window(all, page, c.opts.PageSize)
	if len(window) == 0 {
		c.store.Dispatch(store.SetHasMore{HasMore: false})
		return Result{Page: page, HasMore: false}, nil
	}

	c.store.Dispatch(store.AppendPosts{Posts: window})
	c.store.Dispatch(store.IncrementPage{})
	c.opts.Logger.Debug("loaded posts page", zap.Int("page", page), zap.Int("count", len(window)))
	return Result{Loaded: len(window), Page: page + 1, HasMore: true}, nil
}

// Window returns posts[(page-1)*size : page*size], clamped to the slice.
func Window(posts []models.Post, page, size int) []models.Post {
	if page < 1 || size <= 0 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(posts) {
		return nil
	}
	end := start + size
	if end > len(posts) {
		end = len(posts)
	}
	return posts[start:end]
}

func (c *Cursor) count(outcome string) {
	if c.opts.Metrics != nil {
		c.opts.Metrics.FeedLoads.WithLabelValues(outcome).Inc()
	}
}
