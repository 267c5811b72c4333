package profile

import (
	"math"
	"math/rand/v2"
	"reflect"
	"testing"

	"github.com/matzehuels/gridfit/pkg/geom"
	"github.com/matzehuels/gridfit/pkg/grid"
	"github.com/matzehuels/gridfit/pkg/metrics"
	"github.com/matzehuels/gridfit/pkg/prefs"
)

var densities = []float64{1, 1.5, 2, 2.625, 3, 3.5, 4}

// randomInputs draws a realistic device, grid and preference combination.
func randomInputs(t testing.TB, rng *rand.Rand) Inputs {
	t.Helper()
	density := densities[rng.IntN(len(densities))]
	shortDp := 320 + rng.Float64()*680
	aspect := 1.3 + rng.Float64()*1.1
	short := int(shortDp * density)
	long := int(shortDp * aspect * density)
	landscape := rng.IntN(2) == 0
	rot := metrics.Rotation(rng.IntN(4))

	w, h := short, long
	if landscape {
		w, h = long, short
	}
	m, err := metrics.New(density, metrics.Window{Width: w, Height: h, Landscape: landscape}, rot)
	if err != nil {
		t.Fatal(err)
	}

	icon := 40 + float64(rng.IntN(25))
	spec := grid.InvariantSpec{
		Columns:          3 + rng.IntN(5),
		Rows:             3 + rng.IntN(5),
		IconSizeDp:       icon,
		IconTextSizeSp:   11 + float64(rng.IntN(4)),
		HotseatIconCount: 3 + rng.IntN(5),
		FolderRows:       3 + rng.IntN(2),
		FolderColumns:    3 + rng.IntN(3),
	}

	cfg := prefs.Config{
		DockHidden:           rng.IntN(4) == 0,
		DockRows:             1 + rng.IntN(2),
		DockScale:            0.2 + rng.Float64()*0.8,
		FullWidthWidgets:     rng.IntN(2) == 0,
		HomeLabelRows:        rng.IntN(3),
		DrawerLabelRows:      rng.IntN(3),
		UseCustomDockOpacity: rng.IntN(2) == 0,
		DrawerPaddingScale:   rng.Float64() * 2,
	}

	return Inputs{
		Spec:    spec,
		Metrics: m,
		Config:  cfg,
		Insets:  geom.R(0, rng.IntN(100), 0, rng.IntN(150)),
	}
}

// checkNonNegative walks every numeric field of p and reports negatives and
// NaNs.
func checkNonNegative(t *testing.T, p *Profile) {
	t.Helper()
	v := reflect.ValueOf(*p)
	typ := v.Type()
	for i := range v.NumField() {
		f := v.Field(i)
		name := typ.Field(i).Name
		switch val := f.Interface().(type) {
		case int:
			if val < 0 {
				t.Errorf("%s = %d, want >= 0", name, val)
			}
		case float64:
			if val < 0 || math.IsNaN(val) {
				t.Errorf("%s = %v, want >= 0", name, val)
			}
		case geom.Rect:
			if val.Left < 0 || val.Top < 0 || val.Right < 0 || val.Bottom < 0 {
				t.Errorf("%s = %v has a negative edge", name, val)
			}
		case geom.PointF:
			if val.X < 0 || val.Y < 0 || math.IsNaN(val.X) || math.IsNaN(val.Y) {
				t.Errorf("%s = %v, want >= 0", name, val)
			}
		}
	}
}

func TestResolveProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for i := range 500 {
		in := randomInputs(t, rng)
		p, err := Resolve(in)
		if err != nil {
			t.Fatalf("case %d: Resolve() error: %v", i, err)
		}

		checkNonNegative(t, p)

		if used := p.Columns*p.CellWidthPx + p.WorkspacePadding.Left + p.WorkspacePadding.Right; used > p.AvailableWidthPx {
			t.Errorf("case %d (%v, %dx%d grid, vertical=%v, class=%v): grid width %d exceeds available %d",
				i, in.Metrics.Available(), p.Columns, p.Rows, p.VerticalBar, p.Class, used, p.AvailableWidthPx)
		}
		if p.CellWidthPx < p.IconSizePx {
			t.Errorf("case %d: cell width %d below icon size %d", i, p.CellWidthPx, p.IconSizePx)
		}
		if p.LabelsHidden && (p.IconTextSizePx != 0 || p.CellHeightPx != p.IconSizePx) {
			t.Errorf("case %d: hidden labels but text=%d cellHeight=%d icon=%d",
				i, p.IconTextSizePx, p.CellHeightPx, p.IconSizePx)
		}
		if in.Config.DockHidden && (p.HotseatBarSizePx != 0 || p.VerticalDragHandleSizePx != 0) {
			t.Errorf("case %d: hidden dock has hotseat=%d drag=%d", i, p.HotseatBarSizePx, p.VerticalDragHandleSizePx)
		}
		if !p.VerticalBar && !in.Config.DockHidden {
			floor := p.HotseatCellHeightPx*in.Config.DockRows + p.HotseatTopPaddingPx + p.HotseatBottomPaddingPx
			if p.HotseatBarSizePx < floor {
				t.Errorf("case %d: hotseat %d below the floor %d for %d rows", i, p.HotseatBarSizePx, floor, in.Config.DockRows)
			}
		}
		if p.WorkspaceSpringLoadShrinkFactor > 1 {
			t.Errorf("case %d: spring-load factor %v above 1", i, p.WorkspaceSpringLoadShrinkFactor)
		}

		again, err := Resolve(in)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(p, again) {
			t.Errorf("case %d: Resolve() is not idempotent", i)
		}
	}
}

func TestMultiWindowProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))

	for i := range 300 {
		in := randomInputs(t, rng)
		in.Metrics = in.Metrics.ForOrientation(in.Metrics.Landscape)
		full, err := Resolve(in)
		if err != nil {
			t.Fatal(err)
		}

		avail := full.Available()
		size := geom.Pt(1+rng.IntN(avail.X), 1+rng.IntN(avail.Y))
		mw, err := MultiWindow(full, in, size)
		if err != nil {
			t.Fatalf("case %d: MultiWindow() error: %v", i, err)
		}

		s := mw.AppWidgetScale
		if s.X <= 0 || s.X > 1 || s.Y <= 0 || s.Y > 1 {
			t.Errorf("case %d: AppWidgetScale = %v outside (0, 1]", i, s)
		}
		if !mw.MultiWindow {
			t.Errorf("case %d: MultiWindow flag not set", i)
		}
		if mw.AvailableWidthPx > avail.X || mw.AvailableHeightPx > avail.Y {
			t.Errorf("case %d: multi-window %v exceeds full screen %v", i, mw.Available(), avail)
		}
		checkNonNegative(t, mw)
	}
}

func TestSeascapeSymmetryProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))

	for i := range 200 {
		in := randomInputs(t, rng)
		in.Metrics = in.Metrics.ForOrientation(true).WithRotation(metrics.Rotation90)
		land, err := Resolve(in)
		if err != nil {
			t.Fatal(err)
		}
		if !land.VerticalBar {
			continue
		}
		in.Metrics = in.Metrics.WithRotation(metrics.Rotation270)
		sea, err := Resolve(in)
		if err != nil {
			t.Fatal(err)
		}
		if sea.WorkspacePadding != land.WorkspacePadding.MirrorX() {
			t.Errorf("case %d: seascape %v, landscape %v", i, sea.WorkspacePadding, land.WorkspacePadding)
		}
	}
}
