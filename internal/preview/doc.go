// Package preview memoizes filter results for interactive preview.
//
// A [Cache] maps a string key to a computed pixel buffer. Keys are built with
// [Key] or [FilterKey] from a fingerprint of the source pixels, the filter
// name and the filter's serialized parameters, so identical requests always
// share one entry.
//
// # Concurrency
//
// [Cache.GetOrCompute] runs at most one factory per key at a time. Callers
// that arrive while a computation is in flight wait on it (through
// golang.org/x/sync/singleflight) and receive the same buffer. A caller whose
// context is cancelled stops waiting, but the computation still completes and
// is cached for the next request.
//
// # Bounds
//
// The cache holds at most Capacity entries (50 by default). Inserting past the
// bound evicts the EvictBatch oldest insertions (10 by default). There is no
// TTL; entries live until evicted or until [Cache.Clear].
//
// # Failures
//
// A factory that returns an error or panics is not memoized. The caller gets
// a copy of its fallback source together with a [*ComputeError], the failure
// is passed once to the configured [Reporter], and the next request for the
// key tries again.
//
// # Example Usage
//
//	cache := preview.New(preview.WithReporter(preview.LogReporter{Logger: log}))
//	spec, _ := filters.Parse("vintage")
//	out, err := cache.GetOrCompute(ctx, preview.FilterKey(src, spec), src,
//	    func() (*image.NRGBA, error) { return spec.Apply(src) })
//	if err != nil {
//	    // out is an unmodified copy of src
//	}
package preview
