package profile

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridfit/pkg/device"
	"github.com/matzehuels/gridfit/pkg/geom"
	"github.com/matzehuels/gridfit/pkg/grid"
	"github.com/matzehuels/gridfit/pkg/metrics"
	"github.com/matzehuels/gridfit/pkg/observability"
	"github.com/matzehuels/gridfit/pkg/prefs"
)

// maxNotifyRounds bounds how many times a change made by a listener during
// notification can trigger another notification round.
const maxNotifyRounds = 8

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithInsets sets the initial system insets.
func WithInsets(in geom.Rect) Option { return func(r *Resolver) { r.insets = in } }

// WithDimens replaces the device class dimension table.
func WithDimens(d device.Dimens) Option { return func(r *Resolver) { r.dimens = &d } }

// Resolver owns the current Profile of one display and keeps it in step with
// insets, rotation, metrics and preferences.
//
// Every change produces a fresh Profile with the next generation number,
// which is swapped in before listeners are notified. A change made from
// inside a listener is applied immediately but its recomputation and
// notification are deferred until the current round ends; after
// maxNotifyRounds such rounds the profile is still recomputed but listeners
// are no longer notified.
//
// Resolver is safe for concurrent use.
type Resolver struct {
	mu      sync.Mutex
	spec    grid.InvariantSpec
	metrics metrics.Snapshot
	cfg     prefs.Config
	insets  geom.Rect
	dimens  *device.Dimens

	provider prefs.Provider
	sub      prefs.Subscription

	current   *Profile
	portrait  *Profile
	landscape *Profile
	gen       uint64

	listeners Registry
	logger    *log.Logger

	notifying bool
	pending   string
	closed    bool
}

var _ prefs.Listener = (*Resolver)(nil)

// New resolves the first profile and, when provider is non-nil, subscribes
// to every watched preference key. A nil provider uses prefs.Default.
func New(spec grid.InvariantSpec, m metrics.Snapshot, provider prefs.Provider, opts ...Option) (*Resolver, error) {
	r := &Resolver{
		spec:     spec,
		metrics:  m,
		cfg:      prefs.Default(),
		provider: provider,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	if provider != nil {
		r.cfg = provider.Snapshot().Normalize()
	}

	r.mu.Lock()
	err := r.recomputeLocked("init")
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if provider != nil {
		r.sub = provider.Subscribe(r, prefs.WatchedKeys()...)
	}
	return r, nil
}

func (r *Resolver) inputsLocked() Inputs {
	return Inputs{
		Spec:    r.spec,
		Metrics: r.metrics,
		Config:  r.cfg,
		Insets:  r.insets,
		Dimens:  r.dimens,
	}
}

// recomputeLocked resolves the current profile and both full-screen base
// profiles and swaps them in. r.mu must be held.
func (r *Resolver) recomputeLocked(reason string) error {
	ctx := context.Background()
	hooks := observability.Resolver()
	start := time.Now()
	hooks.OnResolveStart(ctx, reason)

	in := r.inputsLocked()
	current, err := Resolve(in)
	var portrait, landscape *Profile
	if err == nil {
		portrait, err = resolveFullScreen(in, false)
	}
	if err == nil {
		landscape, err = resolveFullScreen(in, true)
	}
	if err != nil {
		hooks.OnResolveComplete(ctx, reason, r.gen, time.Since(start), err)
		return err
	}

	r.gen++
	current.Generation = r.gen
	portrait.Generation = r.gen
	landscape.Generation = r.gen
	r.current, r.portrait, r.landscape = current, portrait, landscape

	elapsed := time.Since(start)
	r.logger.Debug("layout resolved", "reason", reason, "generation", r.gen, "duration", elapsed)
	hooks.OnResolveComplete(ctx, reason, r.gen, elapsed, nil)
	return nil
}

func resolveFullScreen(in Inputs, landscape bool) (*Profile, error) {
	in.Metrics = in.Metrics.ForOrientation(landscape)
	return Resolve(in)
}

// update applies mutate and, if it reports a change, recomputes and notifies.
func (r *Resolver) update(reason string, mutate func() bool) error {
	r.mu.Lock()
	if r.closed || !mutate() {
		r.mu.Unlock()
		return nil
	}
	if r.notifying {
		r.pending = reason
		r.mu.Unlock()
		r.logger.Debug("deferring nested layout change", "reason", reason)
		return nil
	}
	r.notifying = true
	defer func() {
		r.mu.Lock()
		r.notifying = false
		r.pending = ""
		r.mu.Unlock()
	}()

	for round := 1; ; round++ {
		err := r.recomputeLocked(reason)
		p, gen := r.current, r.gen
		r.mu.Unlock()
		if err != nil {
			return err
		}

		n := r.listeners.Notify(p)
		observability.Resolver().OnNotify(context.Background(), gen, n)

		r.mu.Lock()
		if r.pending == "" {
			r.mu.Unlock()
			return nil
		}
		reason, r.pending = r.pending, ""
		if round >= maxNotifyRounds {
			err := r.recomputeLocked(reason)
			r.mu.Unlock()
			r.logger.Warn("dropping nested layout notification", "reason", reason, "rounds", round)
			return err
		}
	}
}

// Profile returns the current profile. The profile is never modified; fetch
// it again after a change notification.
func (r *Resolver) Profile() *Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Generation returns the generation of the current profile.
func (r *Resolver) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// Metrics returns the metrics the current profile was resolved from.
func (r *Resolver) Metrics() metrics.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.metrics
}

// Config returns the preferences the current profile was resolved from.
func (r *Resolver) Config() prefs.Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg
}

// Insets returns the current system insets.
func (r *Resolver) Insets() geom.Rect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.insets
}

// UpdateInsets stores new system insets and recomputes when they differ.
func (r *Resolver) UpdateInsets(in geom.Rect) {
	err := r.update("insets", func() bool {
		if r.insets == in {
			return false
		}
		r.insets = in
		return true
	})
	if err != nil {
		r.logger.Error("layout update failed", "reason", "insets", "err", err)
	}
}

// UpdateRotation stores the display rotation. It recomputes and returns true
// only when the rotation moves the vertical dock bar to the other edge.
func (r *Resolver) UpdateRotation(rot metrics.Rotation) bool {
	var changed bool
	err := r.update("rotation", func() bool {
		old := r.metrics.Rotation
		r.metrics = r.metrics.WithRotation(rot)
		changed = r.current.VerticalBar && old.IsSeascape() != rot.IsSeascape()
		return changed
	})
	if err != nil {
		r.logger.Error("layout update failed", "reason", "rotation", "err", err)
	}
	return changed
}

// UpdateMetrics replaces the metrics after a configuration change. Invalid
// metrics are rejected and leave the resolver unchanged.
func (r *Resolver) UpdateMetrics(m metrics.Snapshot) error {
	r.mu.Lock()
	in := r.inputsLocked()
	r.mu.Unlock()
	in.Metrics = m
	if _, err := Resolve(in); err != nil {
		return err
	}
	return r.update("metrics", func() bool {
		r.metrics = m
		return true
	})
}

// OnConfigChanged implements prefs.Listener. A delivery that leaves the
// preferences unchanged, including the forced delivery made on subscription,
// does nothing.
func (r *Resolver) OnConfigChanged(key prefs.Key, cfg prefs.Config, force bool) {
	cfg = cfg.Normalize()
	err := r.update("prefs:"+key.String(), func() bool {
		if r.cfg == cfg {
			return false
		}
		r.cfg = cfg
		return true
	})
	if err != nil {
		r.logger.Error("layout update failed", "key", key, "force", force, "err", err)
	}
}

// AddListener registers l. It returns false if l was already registered.
func (r *Resolver) AddListener(l Listener) bool { return r.listeners.Add(l) }

// RemoveListener unregisters l.
func (r *Resolver) RemoveListener(l Listener) bool { return r.listeners.Remove(l) }

// Copy resolves an independent profile for the current available area. It
// does not affect the resolver or its listeners.
func (r *Resolver) Copy() (*Profile, error) {
	r.mu.Lock()
	in := r.inputsLocked()
	r.mu.Unlock()
	return Copy(in)
}

// MultiWindowProfile resolves a profile for a multi-window rectangle in the
// current orientation.
func (r *Resolver) MultiWindowProfile(size geom.Point) (*Profile, error) {
	r.mu.Lock()
	in := r.inputsLocked()
	full := r.fullScreenLocked()
	r.mu.Unlock()
	in.Metrics = in.Metrics.ForOrientation(in.Metrics.Landscape)
	return MultiWindow(full, in, size)
}

// FullScreenProfile returns the base profile for the current orientation
// outside multi-window mode.
func (r *Resolver) FullScreenProfile() *Profile {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fullScreenLocked()
}

func (r *Resolver) fullScreenLocked() *Profile {
	if r.metrics.Landscape {
		return r.landscape
	}
	return r.portrait
}

// CellSizeFor returns the cell size of a container in the current profile.
func (r *Resolver) CellSizeFor(c Container) geom.Point { return r.Profile().CellSizeFor(c) }

// HotseatLayoutPadding returns the hotseat padding of the current profile.
func (r *Resolver) HotseatLayoutPadding() geom.Rect { return r.Profile().HotseatPadding }

// OpenFolderBounds returns the open folder bounds of the current profile.
func (r *Resolver) OpenFolderBounds() geom.Rect { return r.Profile().OpenFolderBounds }

// Close unsubscribes from the preference provider. Later changes are
// ignored.
func (r *Resolver) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	provider, sub := r.provider, r.sub
	r.mu.Unlock()

	if provider != nil {
		provider.Unsubscribe(sub)
	}
	return nil
}
