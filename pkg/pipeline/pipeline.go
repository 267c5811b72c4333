// Package pipeline resolves layout profiles for callers that describe a
// device with plain values: the CLI flags, the HTTP API and batch commands.
//
// It turns [Options] into the typed inputs of [profile.Resolve], applies the
// shared defaults, and caches resolved profiles through a [Runner]. By
// centralizing this logic, every entry point resolves the same options to
// the same profile.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	p, err := runner.Resolve(ctx, pipeline.Options{
//	    Preset:  "5x5",
//	    Density: 2.625,
//	    Width:   1080,
//	    Height:  2340,
//	})
//
// Resolve a batch concurrently:
//
//	results, err := runner.ResolveAll(ctx, []pipeline.Options{phone, tablet}, 4)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridfit/pkg/cache"
	"github.com/matzehuels/gridfit/pkg/errors"
	"github.com/matzehuels/gridfit/pkg/geom"
	"github.com/matzehuels/gridfit/pkg/grid"
	"github.com/matzehuels/gridfit/pkg/metrics"
	"github.com/matzehuels/gridfit/pkg/prefs"
	"github.com/matzehuels/gridfit/pkg/profile"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultPreset is the grid used when neither a preset nor a spec is given.
	DefaultPreset = "5x5"

	// DefaultDensity is the pixel density of a typical 420dpi phone.
	DefaultDensity = 2.625

	// DefaultWidth is the default window width in pixels.
	DefaultWidth = 1080

	// DefaultHeight is the default window height in pixels.
	DefaultHeight = 2340

	// DefaultConcurrency bounds ResolveAll when no limit is given.
	DefaultConcurrency = 4
)

// =============================================================================
// Options - Resolution Request
// =============================================================================

// Options describes one device and grid to resolve.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Grid: a built-in preset name or an inline spec. Spec wins when both
	// are set.
	Preset string              `json:"preset,omitempty"`
	Spec   *grid.InvariantSpec `json:"spec,omitempty"`

	// Display. The window is landscape when Width > Height.
	Density  float64    `json:"density,omitempty"`
	Width    int        `json:"width,omitempty"`
	Height   int        `json:"height,omitempty"`
	MinSize  geom.Point `json:"min_size,omitempty"`
	MaxSize  geom.Point `json:"max_size,omitempty"`
	Rotation int        `json:"rotation,omitempty"` // degrees: 0, 90, 180 or 270
	Insets   geom.Rect  `json:"insets,omitempty"`

	// Prefs overrides the default preferences.
	Prefs *prefs.Config `json:"prefs,omitempty"`

	// Refresh bypasses the cache read (the result is still stored).
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result is one resolved profile with its bookkeeping.
type Result struct {
	Profile *profile.Profile `json:"profile"`

	// Key is the cache key the profile is stored under.
	Key string `json:"key"`

	Stats     Stats     `json:"stats"`
	CacheInfo CacheInfo `json:"cache"`
}

// Stats contains resolution timing.
type Stats struct {
	ResolveTime time.Duration `json:"resolve_time"`
}

// CacheInfo tracks whether the profile came from the cache.
type CacheInfo struct {
	Hit bool `json:"hit"`
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields.
func (o *Options) SetDefaults() {
	if o.Preset == "" && o.Spec == nil {
		o.Preset = DefaultPreset
	}
	if o.Density == 0 {
		o.Density = DefaultDensity
	}
	if o.Width == 0 && o.Height == 0 {
		o.Width, o.Height = DefaultWidth, DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options without resolving them.
func (o *Options) Validate() error {
	if _, err := o.GridSpec(); err != nil {
		return err
	}
	if err := errors.ValidateDensity(o.Density); err != nil {
		return err
	}
	if o.Width <= 0 || o.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidMetrics, "window size must be positive, got %dx%d", o.Width, o.Height)
	}
	if _, err := metrics.ParseRotation(o.Rotation); err != nil {
		return err
	}
	if o.Insets.Left < 0 || o.Insets.Top < 0 || o.Insets.Right < 0 || o.Insets.Bottom < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "insets must not be negative, got %v", o.Insets)
	}
	return nil
}

// ValidateAndSetDefaults applies defaults and validates.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// GridSpec returns the inline spec or the named preset, with defaults
// applied and validated.
func (o *Options) GridSpec() (grid.InvariantSpec, error) {
	var spec grid.InvariantSpec
	if o.Spec != nil {
		spec = *o.Spec
	} else {
		p, err := grid.Preset(o.Preset)
		if err != nil {
			return grid.InvariantSpec{}, err
		}
		spec = p
	}
	spec = spec.WithDefaults()
	if err := spec.Validate(); err != nil {
		return grid.InvariantSpec{}, err
	}
	return spec, nil
}

// Landscape reports whether the window is wider than tall.
func (o *Options) Landscape() bool {
	return o.Width > o.Height
}

// Metrics builds the display snapshot.
func (o *Options) Metrics() (metrics.Snapshot, error) {
	rot, err := metrics.ParseRotation(o.Rotation)
	if err != nil {
		return metrics.Snapshot{}, err
	}
	return metrics.New(o.Density, metrics.Window{
		MinSize:   o.MinSize,
		MaxSize:   o.MaxSize,
		Width:     o.Width,
		Height:    o.Height,
		Landscape: o.Landscape(),
	}, rot)
}

// Config returns the normalized preferences.
func (o *Options) Config() prefs.Config {
	if o.Prefs == nil {
		return prefs.Default()
	}
	return o.Prefs.Normalize()
}

// Inputs converts the options into resolver inputs.
func (o *Options) Inputs() (profile.Inputs, error) {
	spec, err := o.GridSpec()
	if err != nil {
		return profile.Inputs{}, err
	}
	m, err := o.Metrics()
	if err != nil {
		return profile.Inputs{}, err
	}
	return profile.Inputs{
		Spec:    spec,
		Metrics: m,
		Config:  o.Config(),
		Insets:  o.Insets,
	}, nil
}

// ProfileKey returns the cache key for the options' full-screen profile.
func (o *Options) ProfileKey(k cache.Keyer) (string, error) {
	spec, err := o.GridSpec()
	if err != nil {
		return "", err
	}
	specHash, err := cache.HashJSON(spec)
	if err != nil {
		return "", err
	}
	prefsHash, err := cache.HashJSON(o.Config())
	if err != nil {
		return "", err
	}
	in := o.Insets
	return k.ProfileKey(specHash, cache.ProfileKeyOpts{
		Density:   o.Density,
		Width:     o.Width,
		Height:    o.Height,
		Landscape: o.Landscape(),
		Rotation:  o.Rotation,
		Insets:    [4]int{in.Left, in.Top, in.Right, in.Bottom},
		PrefsHash: prefsHash,
	}), nil
}

func (o *Options) String() string {
	name := o.Preset
	if o.Spec != nil {
		name = o.Spec.Name
		if name == "" {
			name = fmt.Sprintf("%dx%d", o.Spec.Columns, o.Spec.Rows)
		}
	}
	return fmt.Sprintf("%s@%dx%d/%g", name, o.Width, o.Height, o.Density)
}
