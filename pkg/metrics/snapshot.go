package metrics

import (
	"math"

	"github.com/matzehuels/gridfit/pkg/device"
	"github.com/matzehuels/gridfit/pkg/errors"
	"github.com/matzehuels/gridfit/pkg/geom"
)

// TallAspectRatio is the longer-to-shorter side ratio at and above which a
// screen counts as tall.
const TallAspectRatio = 2.0

// textLineHeightRatio is the distance between the font's top and bottom
// metrics as a multiple of its text size.
const textLineHeightRatio = 1.327

// Window is the raw geometry handed over by the windowing system.
type Window struct {
	// MinSize and MaxSize are the smallest and largest usable window extents
	// across orientations, after system decoration.
	MinSize geom.Point `json:"min_size"`
	MaxSize geom.Point `json:"max_size"`

	// Width and Height are the raw pixel size of the window.
	Width  int `json:"width"`
	Height int `json:"height"`

	Landscape   bool `json:"landscape"`
	MultiWindow bool `json:"multi_window"`
}

// Snapshot is the resolved view of the display for one orientation.
type Snapshot struct {
	Density   float64 `json:"density"`
	FontScale float64 `json:"font_scale"`

	// SmallestWidthDp is the shorter side of the physical display in dp. It
	// is fixed at construction and survives every derived variant, so a
	// multi-window rectangle keeps the device class of its display.
	SmallestWidthDp float64 `json:"smallest_width_dp"`

	WidthPx  int `json:"width_px"`
	HeightPx int `json:"height_px"`

	AvailableWidthPx  int `json:"available_width_px"`
	AvailableHeightPx int `json:"available_height_px"`

	MinSize geom.Point `json:"min_size"`
	MaxSize geom.Point `json:"max_size"`

	Landscape   bool     `json:"landscape"`
	MultiWindow bool     `json:"multi_window"`
	Rotation    Rotation `json:"rotation"`
}

// New builds a Snapshot from a window report. A zero MinSize or MaxSize
// falls back to the undecorated extents of the window across both
// orientations: the shorter side squared and the longer side squared.
func New(density float64, w Window, rot Rotation) (Snapshot, error) {
	if err := errors.ValidateDensity(density); err != nil {
		return Snapshot{}, err
	}
	if w.Width <= 0 || w.Height <= 0 {
		return Snapshot{}, errors.New(errors.ErrCodeInvalidMetrics, "window size must be positive, got %dx%d", w.Width, w.Height)
	}
	if w.MinSize.X < 0 || w.MinSize.Y < 0 || w.MaxSize.X < 0 || w.MaxSize.Y < 0 {
		return Snapshot{}, errors.New(errors.ErrCodeInvalidMetrics, "window extents must not be negative")
	}

	short, long := min(w.Width, w.Height), max(w.Width, w.Height)
	if w.MinSize == (geom.Point{}) {
		w.MinSize = geom.Pt(short, short)
	}
	if w.MaxSize == (geom.Point{}) {
		w.MaxSize = geom.Pt(long, long)
	}

	s := Snapshot{
		Density:         density,
		FontScale:       1,
		SmallestWidthDp: float64(min(w.Width, w.Height)) / density,
		WidthPx:         w.Width,
		HeightPx:        w.Height,
		MinSize:         w.MinSize,
		MaxSize:         w.MaxSize,
		Landscape:       w.Landscape,
		MultiWindow:     w.MultiWindow,
		Rotation:        rot,
	}
	s.AvailableWidthPx, s.AvailableHeightPx = available(w.MinSize, w.MaxSize, w.Landscape)
	return s, nil
}

// available picks the usable extent for an orientation: landscape is widest
// and shortest, portrait is narrowest and tallest.
func available(minSize, maxSize geom.Point, landscape bool) (int, int) {
	if landscape {
		return maxSize.X, minSize.Y
	}
	return minSize.X, maxSize.Y
}

// ForOrientation returns the full-screen snapshot of the same display in the
// requested orientation. Multi-window state is cleared.
func (s Snapshot) ForOrientation(landscape bool) Snapshot {
	small := min(s.WidthPx, s.HeightPx)
	large := max(s.WidthPx, s.HeightPx)

	out := s
	out.Landscape = landscape
	out.MultiWindow = false
	if landscape {
		out.WidthPx, out.HeightPx = large, small
	} else {
		out.WidthPx, out.HeightPx = small, large
	}
	out.AvailableWidthPx, out.AvailableHeightPx = available(s.MinSize, s.MaxSize, landscape)
	return out
}

// ForMultiWindow returns a snapshot for a multi-window rectangle of the given
// size. The caller is responsible for clamping size to the full-screen
// available area.
func (s Snapshot) ForMultiWindow(size geom.Point) Snapshot {
	size = size.Clamp0()
	out := s
	out.MultiWindow = true
	out.WidthPx, out.HeightPx = size.X, size.Y
	out.MinSize, out.MaxSize = size, size
	out.AvailableWidthPx, out.AvailableHeightPx = size.X, size.Y
	return out
}

// ForCopy returns a snapshot pinned to the current available area, so that a
// profile resolved from it sees the same bounds regardless of orientation.
func (s Snapshot) ForCopy() Snapshot {
	size := geom.Pt(s.AvailableWidthPx, s.AvailableHeightPx)
	out := s
	out.MinSize, out.MaxSize = size, size
	return out
}

// WithRotation returns a copy of s with a different rotation.
func (s Snapshot) WithRotation(r Rotation) Snapshot {
	s.Rotation = r
	return s
}

// Available returns the usable area as a Point.
func (s Snapshot) Available() geom.Point {
	return geom.Pt(s.AvailableWidthPx, s.AvailableHeightPx)
}

// Class classifies the display by its smallest width.
func (s Snapshot) Class() device.Class {
	return device.Classify(s.SmallestWidthDp)
}

// AspectRatio returns the longer raw side divided by the shorter one, or 0
// when either side is zero.
func (s Snapshot) AspectRatio() float64 {
	small := min(s.WidthPx, s.HeightPx)
	if small <= 0 {
		return 0
	}
	return float64(max(s.WidthPx, s.HeightPx)) / float64(small)
}

// IsTall reports whether the aspect ratio reaches TallAspectRatio.
func (s Snapshot) IsTall() bool {
	return s.AspectRatio() >= TallAspectRatio
}

// PxFromDp converts density-independent pixels to device pixels, rounding to
// the nearest pixel.
func (s Snapshot) PxFromDp(dp float64) int {
	return int(math.Round(dp * s.Density))
}

// PxFromSp converts scale-independent pixels to device pixels, honoring the
// font scale.
func (s Snapshot) PxFromSp(sp float64) int {
	return int(math.Round(sp * s.Density * s.fontScale()))
}

func (s Snapshot) fontScale() float64 {
	if s.FontScale <= 0 {
		return 1
	}
	return s.FontScale
}

// TextHeight returns the pixel height of one label line at textSizePx.
func TextHeight(textSizePx float64) int {
	if textSizePx <= 0 {
		return 0
	}
	return int(math.Ceil(textSizePx * textLineHeightRatio))
}
