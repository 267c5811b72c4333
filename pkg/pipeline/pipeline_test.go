package pipeline

import (
	"context"
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridfit/pkg/cache"
	"github.com/matzehuels/gridfit/pkg/errors"
	"github.com/matzehuels/gridfit/pkg/geom"
	"github.com/matzehuels/gridfit/pkg/grid"
	"github.com/matzehuels/gridfit/pkg/prefs"
	"github.com/matzehuels/gridfit/pkg/profile"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func phoneOptions() Options {
	return Options{Preset: "5x5", Density: 2, Width: 1080, Height: 1920}
}

func TestOptionsSetDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()

	if o.Preset != DefaultPreset {
		t.Errorf("Preset = %q, want %q", o.Preset, DefaultPreset)
	}
	if o.Density != DefaultDensity {
		t.Errorf("Density = %v, want %v", o.Density, DefaultDensity)
	}
	if o.Width != DefaultWidth || o.Height != DefaultHeight {
		t.Errorf("size = %dx%d, want %dx%d", o.Width, o.Height, DefaultWidth, DefaultHeight)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	inline := Options{Spec: &grid.InvariantSpec{Columns: 4, Rows: 4}}
	inline.SetDefaults()
	if inline.Preset != "" {
		t.Errorf("inline spec should not get a preset, got %q", inline.Preset)
	}
}

func TestOptionsValidate(t *testing.T) {
	bad := grid.InvariantSpec{Columns: -1, Rows: 5, IconSizeDp: 48, IconTextSizeSp: 13, HotseatIconCount: 5, FolderRows: 4, FolderColumns: 4}

	tests := []struct {
		name string
		mod  func(*Options)
		code errors.Code
	}{
		{"valid", func(*Options) {}, ""},
		{"unknown preset", func(o *Options) { o.Preset = "9x9" }, errors.ErrCodeNotFound},
		{"invalid inline spec", func(o *Options) { o.Spec = &bad }, errors.ErrCodeInvalidSpec},
		{"negative density", func(o *Options) { o.Density = -1 }, errors.ErrCodeInvalidMetrics},
		{"zero width", func(o *Options) { o.Width = 0 }, errors.ErrCodeInvalidMetrics},
		{"bad rotation", func(o *Options) { o.Rotation = 45 }, errors.ErrCodeInvalidMetrics},
		{"negative insets", func(o *Options) { o.Insets = geom.R(0, -1, 0, 0) }, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := phoneOptions()
			tt.mod(&o)
			err := o.ValidateAndSetDefaults()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsInputs(t *testing.T) {
	o := phoneOptions()
	o.Width, o.Height = 1920, 1080
	o.Rotation = 270
	o.Prefs = &prefs.Config{DockRows: 0, DockScale: 5}

	in, err := o.Inputs()
	if err != nil {
		t.Fatal(err)
	}
	if !in.Metrics.Landscape || !in.Metrics.Rotation.IsSeascape() {
		t.Errorf("metrics = %+v, want seascape landscape", in.Metrics)
	}
	if in.Config.DockRows != 1 || in.Config.DockScale != 1 {
		t.Errorf("prefs not normalized: %+v", in.Config)
	}
	if in.Spec.Columns != 5 {
		t.Errorf("spec = %+v", in.Spec)
	}
}

func TestProfileKey(t *testing.T) {
	k := cache.NewDefaultKeyer()
	base := phoneOptions()
	key, err := base.ProfileKey(k)
	if err != nil {
		t.Fatal(err)
	}

	hidden := prefs.Default()
	hidden.DockHidden = true
	variants := map[string]func(*Options){
		"preset":   func(o *Options) { o.Preset = "4x5" },
		"density":  func(o *Options) { o.Density = 3 },
		"rotation": func(o *Options) { o.Rotation = 90 },
		"insets":   func(o *Options) { o.Insets = geom.R(0, 24, 0, 48) },
		"prefs":    func(o *Options) { o.Prefs = &hidden },
	}
	for name, mod := range variants {
		t.Run(name, func(t *testing.T) {
			o := phoneOptions()
			mod(&o)
			got, err := o.ProfileKey(k)
			if err != nil {
				t.Fatal(err)
			}
			if got == key {
				t.Errorf("%s did not change the key", name)
			}
		})
	}

	// Default preferences and an explicit copy of them share a key.
	def := prefs.Default()
	explicit := phoneOptions()
	explicit.Prefs = &def
	if got, _ := explicit.ProfileKey(k); got != key {
		t.Error("explicit default prefs should match implicit defaults")
	}
}

func TestRunnerResolve(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	defer r.Close()

	opts := phoneOptions()
	got, err := r.Resolve(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}

	in, _ := opts.Inputs()
	want, err := profile.Resolve(in)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("runner profile differs from profile.Resolve")
	}
	if got.IconSizePx != 96 || got.HotseatBarSizePx != 148 {
		t.Errorf("icon %d hotseat %d, want 96 and 148", got.IconSizePx, got.HotseatBarSizePx)
	}
}

func TestRunnerCache(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, quietLogger())
	defer r.Close()

	first, err := r.ResolveWithCacheInfo(ctx, phoneOptions())
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.Hit {
		t.Error("first resolve should miss")
	}

	second, err := r.ResolveWithCacheInfo(ctx, phoneOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.Hit {
		t.Error("second resolve should hit")
	}
	if second.Key != first.Key {
		t.Errorf("keys differ: %s vs %s", first.Key, second.Key)
	}
	if !reflect.DeepEqual(first.Profile, second.Profile) {
		t.Error("cached profile differs from resolved profile")
	}

	refresh := phoneOptions()
	refresh.Refresh = true
	third, err := r.ResolveWithCacheInfo(ctx, refresh)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.Hit {
		t.Error("refresh should bypass the cache")
	}
}

func TestRunnerResolveInvalid(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	opts := phoneOptions()
	opts.Preset = "nope"
	if _, err := r.Resolve(context.Background(), opts); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestRunnerMultiWindow(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, quietLogger())

	res, err := r.MultiWindow(ctx, phoneOptions(), geom.Pt(1080, 900))
	if err != nil {
		t.Fatal(err)
	}
	p := res.Profile
	if !p.MultiWindow || !p.LabelsHidden {
		t.Errorf("MultiWindow %v LabelsHidden %v, want both", p.MultiWindow, p.LabelsHidden)
	}
	if p.Available() != geom.Pt(1080, 900) {
		t.Errorf("Available() = %v", p.Available())
	}

	again, err := r.MultiWindow(ctx, phoneOptions(), geom.Pt(1080, 900))
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheInfo.Hit || !reflect.DeepEqual(again.Profile, p) {
		t.Errorf("second multi-window resolve: hit %v", again.CacheInfo.Hit)
	}

	for _, size := range []geom.Point{geom.Pt(0, 900), geom.Pt(1080, -1)} {
		if _, err := r.MultiWindow(ctx, phoneOptions(), size); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("MultiWindow(%v) error = %v, want INVALID_INPUT", size, err)
		}
	}
}

func TestRunnerResolveAll(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())

	var batch []Options
	for _, name := range grid.PresetNames() {
		for _, size := range []geom.Point{geom.Pt(1080, 1920), geom.Pt(1600, 2560), geom.Pt(1920, 1080)} {
			batch = append(batch, Options{Preset: name, Density: 2, Width: size.X, Height: size.Y})
		}
	}

	results, err := r.ResolveAll(context.Background(), batch, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != len(batch) {
		t.Fatalf("got %d results, want %d", len(results), len(batch))
	}
	for i, res := range results {
		spec, _ := batch[i].GridSpec()
		if res.Profile.Columns != spec.Columns || res.Profile.WidthPx != batch[i].Width {
			t.Errorf("result %d out of order: columns %d width %d", i, res.Profile.Columns, res.Profile.WidthPx)
		}
	}

	batch[len(batch)/2].Rotation = 33
	if _, err := r.ResolveAll(context.Background(), batch, 0); !errors.Is(err, errors.ErrCodeInvalidMetrics) {
		t.Errorf("batch with bad rotation: error = %v", err)
	}
}
