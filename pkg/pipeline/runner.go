package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gridfit/pkg/cache"
	"github.com/matzehuels/gridfit/pkg/errors"
	"github.com/matzehuels/gridfit/pkg/geom"
	"github.com/matzehuels/gridfit/pkg/observability"
	"github.com/matzehuels/gridfit/pkg/profile"
)

// Runner resolves profiles with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// ResolveWithCacheInfo resolves the full-screen profile described by opts
// and reports whether it came from the cache.
func (r *Runner) ResolveWithCacheInfo(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	key, err := opts.ProfileKey(r.Keyer)
	if err != nil {
		return nil, err
	}

	if !opts.Refresh {
		if p, ok := r.lookup(ctx, key, "profile"); ok {
			return &Result{Profile: p, Key: key, CacheInfo: CacheInfo{Hit: true}}, nil
		}
	}

	in, err := opts.Inputs()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	p, err := r.resolve(ctx, func() (*profile.Profile, error) { return profile.Resolve(in) })
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	r.Logger.Debug("resolved profile",
		"device", opts.String(),
		"class", p.Class,
		"icon", p.IconSizePx,
		"duration", elapsed)

	r.store(ctx, key, "profile", p)
	return &Result{Profile: p, Key: key, Stats: Stats{ResolveTime: elapsed}}, nil
}

// Resolve is a convenience wrapper that calls ResolveWithCacheInfo and discards the cache hit info.
func (r *Runner) Resolve(ctx context.Context, opts Options) (*profile.Profile, error) {
	res, err := r.ResolveWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	return res.Profile, nil
}

// MultiWindow resolves the profile for a window of the given size on the
// device described by opts. The full-screen profile of the same orientation
// is resolved (or loaded) first.
func (r *Runner) MultiWindow(ctx context.Context, opts Options, size geom.Point) (*Result, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "multi-window size must be positive, got %v", size)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	full, err := r.ResolveWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}

	key := r.Keyer.MultiWindowKey(full.Key, size.X, size.Y)
	if !opts.Refresh {
		if p, ok := r.lookup(ctx, key, "multiwindow"); ok {
			return &Result{Profile: p, Key: key, CacheInfo: CacheInfo{Hit: true}}, nil
		}
	}

	in, err := opts.Inputs()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	p, err := r.resolve(ctx, func() (*profile.Profile, error) { return profile.MultiWindow(full.Profile, in, size) })
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	r.Logger.Debug("resolved multi-window profile",
		"device", opts.String(),
		"size", size,
		"labels_hidden", p.LabelsHidden,
		"duration", elapsed)

	r.store(ctx, key, "multiwindow", p)
	return &Result{Profile: p, Key: key, Stats: Stats{ResolveTime: elapsed}}, nil
}

// ResolveAll resolves every option set concurrently with at most limit
// resolutions in flight (DefaultConcurrency when limit ≤ 0). Results keep
// the order of opts. The first error cancels the batch.
func (r *Runner) ResolveAll(ctx context.Context, opts []Options, limit int) ([]*Result, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	results := make([]*Result, len(opts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range opts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := r.ResolveWithCacheInfo(gctx, opts[i])
			if err != nil {
				return fmt.Errorf("%s: %w", opts[i].String(), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hits := 0
	for _, res := range results {
		if res.CacheInfo.Hit {
			hits++
		}
	}
	r.Logger.Info("resolved batch", "profiles", len(results), "cache_hits", hits)
	return results, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) resolve(ctx context.Context, fn func() (*profile.Profile, error)) (*profile.Profile, error) {
	hooks := observability.Resolver()
	hooks.OnResolveStart(ctx, "request")
	start := time.Now()
	p, err := fn()
	hooks.OnResolveComplete(ctx, "request", 0, time.Since(start), err)
	return p, err
}

// lookup returns a cached profile. Unreadable entries count as misses.
func (r *Runner) lookup(ctx context.Context, key, keyType string) (*profile.Profile, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	var p profile.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return &p, true
}

func (r *Runner) store(ctx context.Context, key, keyType string, p *profile.Profile) {
	data, err := json.Marshal(p)
	if err != nil {
		r.Logger.Warn("encode profile for cache", "err", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}
