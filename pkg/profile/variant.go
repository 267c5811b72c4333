package profile

import (
	"github.com/matzehuels/gridfit/pkg/errors"
	"github.com/matzehuels/gridfit/pkg/geom"
)

// Copy resolves an independent profile pinned to the current available area
// of in.Metrics.
func Copy(in Inputs) (*Profile, error) {
	in.Metrics = in.Metrics.ForCopy()
	return Resolve(in)
}

// MultiWindow resolves the profile for a multi-window rectangle. full is the
// full-screen profile resolved from in; size is clamped so it never exceeds
// full's available area. Labels are hidden on the result when the cell has
// no vertical room for them, and AppWidgetScale maps full-grid widget sizes
// onto the smaller cells. full is not modified.
func MultiWindow(full *Profile, in Inputs, size geom.Point) (*Profile, error) {
	if full == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "multi-window profile needs a full-screen profile")
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "multi-window size must be positive, got %v", size)
	}
	size = size.Min(full.Available())
	in.Metrics = in.Metrics.ForMultiWindow(size)

	b, err := newPass(in)
	if err != nil {
		return nil, err
	}
	b.compute()

	p := b.p
	cell := p.CellSize()
	paddingY := cell.Y - p.IconSizePx - full.IconDrawablePaddingPx - p.IconTextSizePx
	if paddingY < 2*p.IconDrawablePaddingPx {
		b.hideLabels()
	}

	fullCell := full.CellSize()
	p.AppWidgetScale = geom.PointF{
		X: widgetScale(cell.X, fullCell.X),
		Y: widgetScale(cell.Y, fullCell.Y),
	}

	b.finish()
	return p, nil
}

// widgetScale is the ratio of a multi-window cell to a full-screen cell,
// kept within (0, 1].
func widgetScale(mw, full int) float64 {
	return min(1, float64(max(mw, 1))/float64(max(full, 1)))
}
