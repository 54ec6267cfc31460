package preview

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/ironsheep/photo-fx-mcp/internal/pixel"
)

// Default bounds.
const (
	DefaultCapacity   = 50
	DefaultEvictBatch = 10
)

// Factory computes the buffer for one key.
type Factory func() (*image.NRGBA, error)

// Stats is a snapshot of cache activity.
type Stats struct {
	Hits       uint64 `json:"hits"`
	Misses     uint64 `json:"misses"`
	Computes   uint64 `json:"computes"`
	Failures   uint64 `json:"failures"`
	Evictions  uint64 `json:"evictions"`
	Entries    int    `json:"entries"`
	Capacity   int    `json:"capacity"`
	EvictBatch int    `json:"evict_batch"`
}

// Cache memoizes computed buffers by key. It is safe for concurrent use.
//
// Buffers returned by the cache are shared between callers and must be
// treated as read-only.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*image.NRGBA
	order   []string // insertion order, oldest first
	gen     uint64   // bumped by Clear; stale flights do not store

	group singleflight.Group

	capacity   int
	evictBatch int
	reporter   Reporter
	logger     zerolog.Logger

	hits      atomic.Uint64
	misses    atomic.Uint64
	computes  atomic.Uint64
	failures  atomic.Uint64
	evictions atomic.Uint64
}

// Option configures a Cache.
type Option func(*Cache)

// WithCapacity sets the maximum number of entries. Values below 1 are ignored.
func WithCapacity(n int) Option {
	return func(c *Cache) {
		if n >= 1 {
			c.capacity = n
		}
	}
}

// WithEvictBatch sets how many of the oldest entries are dropped when the
// capacity is exceeded. Values below 1 are ignored.
func WithEvictBatch(n int) Option {
	return func(c *Cache) {
		if n >= 1 {
			c.evictBatch = n
		}
	}
}

// WithReporter sets the collaborator told about factory failures.
func WithReporter(r Reporter) Option {
	return func(c *Cache) {
		if r != nil {
			c.reporter = r
		}
	}
}

// WithLogger sets the logger used for debug output about evictions and
// clears.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Cache) { c.logger = l }
}

// New creates an empty cache. Without options it holds 50 entries, evicts 10
// at a time and discards failure reports.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries:    make(map[string]*image.NRGBA),
		capacity:   DefaultCapacity,
		evictBatch: DefaultEvictBatch,
		reporter:   LogReporter{Logger: zerolog.Nop()},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrCompute returns the cached buffer for key, or runs factory to produce
// it. Concurrent calls for the same key share a single factory invocation and
// receive the same buffer.
//
// Parameters:
//   - ctx: Bounds how long this caller waits. It does not cancel the factory.
//   - key: Cache key, normally built with FilterKey.
//   - fallback: Image returned (as a copy) when no result can be produced.
//     May be nil.
//   - factory: Produces the buffer. It runs at most once at a time per key.
//
// Returns:
//   - *image.NRGBA: The cached or freshly computed buffer, shared between
//     callers and not to be modified; or a copy of fallback on failure.
//   - error: nil on success, a *ComputeError when the factory failed, or
//     ctx.Err() when ctx ended first.
//
// # Failures
//
// When the factory fails or panics the result is not cached and the reporter
// is told once. A later call retries. When ctx ends before the result is
// ready the computation continues and its result is cached.
//
// # Example Usage
//
//	key := preview.FilterKey(src, spec)
//	out, err := cache.GetOrCompute(ctx, key, src, func() (*image.NRGBA, error) {
//	    return spec.Apply(src)
//	})
//	var cerr *preview.ComputeError
//	if errors.As(err, &cerr) {
//	    // out is a copy of src
//	}
func (c *Cache) GetOrCompute(ctx context.Context, key string, fallback image.Image, factory Factory) (*image.NRGBA, error) {
	c.mu.Lock()
	if img, ok := c.entries[key]; ok {
		c.mu.Unlock()
		c.hits.Add(1)
		return img, nil
	}
	gen := c.gen
	c.mu.Unlock()
	c.misses.Add(1)

	// The generation keeps flights started before a Clear from being joined
	// by callers that arrive after it.
	flight := strconv.FormatUint(gen, 10) + "\x00" + key
	ch := c.group.DoChan(flight, func() (interface{}, error) {
		return c.compute(key, gen, factory)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return cloneOrNil(fallback), res.Err
		}
		return res.Val.(*image.NRGBA), nil
	case <-ctx.Done():
		return cloneOrNil(fallback), ctx.Err()
	}
}

func (c *Cache) compute(key string, gen uint64, factory Factory) (*image.NRGBA, error) {
	// A flight for this key may have stored its result between our lookup
	// and the start of this one.
	c.mu.Lock()
	if img, ok := c.entries[key]; ok {
		c.mu.Unlock()
		return img, nil
	}
	c.mu.Unlock()

	c.computes.Add(1)
	img, err := runFactory(factory)
	if err != nil {
		c.failures.Add(1)
		cerr := &ComputeError{Key: key, Err: err}
		c.reporter.ReportFailure(key, err)
		return nil, cerr
	}
	c.store(key, gen, img)
	return img, nil
}

func runFactory(factory Factory) (img *image.NRGBA, err error) {
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("factory panicked: %v", r)
		}
	}()
	img, err = factory()
	if err == nil && img == nil {
		err = ErrNilResult
	}
	return img, err
}

func (c *Cache) store(key string, gen uint64, img *image.NRGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	if _, ok := c.entries[key]; ok {
		return
	}
	c.entries[key] = img
	c.order = append(c.order, key)

	for len(c.order) > c.capacity {
		n := min(c.evictBatch, len(c.order))
		for _, k := range c.order[:n] {
			delete(c.entries, k)
		}
		c.order = append([]string(nil), c.order[n:]...)
		c.evictions.Add(uint64(n))
		c.logger.Debug().Int("evicted", n).Int("entries", len(c.order)).Msg("preview cache over capacity")
	}
}

// Clear removes every entry. Computations already in flight still return to
// their callers but are not stored.
func (c *Cache) Clear() {
	c.mu.Lock()
	n := len(c.order)
	c.entries = make(map[string]*image.NRGBA)
	c.order = nil
	c.gen++
	c.mu.Unlock()
	c.logger.Debug().Int("removed", n).Msg("preview cache cleared")
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// Contains reports whether key is cached.
func (c *Cache) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
		Computes:   c.computes.Load(),
		Failures:   c.failures.Load(),
		Evictions:  c.evictions.Load(),
		Entries:    c.Len(),
		Capacity:   c.capacity,
		EvictBatch: c.evictBatch,
	}
}

func cloneOrNil(img image.Image) *image.NRGBA {
	if img == nil {
		return nil
	}
	if n, ok := img.(*image.NRGBA); ok && n == nil {
		return nil
	}
	return pixel.Clone(img)
}
