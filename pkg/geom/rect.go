package geom

import "fmt"

// Rect is an edge-based rectangle. It doubles as an inset (padding) value,
// where each field is the distance from the corresponding edge.
// Origin (0,0) is top-left.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// R is shorthand for Rect{left, top, right, bottom}.
func R(left, top, right, bottom int) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Size returns Width and Height as a Point.
func (r Rect) Size() Point { return Point{X: r.Width(), Y: r.Height()} }

// Empty reports whether the rectangle encloses no area.
func (r Rect) Empty() bool { return r.Left >= r.Right || r.Top >= r.Bottom }

// Add returns the edge-wise sum of two insets.
func (r Rect) Add(o Rect) Rect {
	return Rect{
		Left:   r.Left + o.Left,
		Top:    r.Top + o.Top,
		Right:  r.Right + o.Right,
		Bottom: r.Bottom + o.Bottom,
	}
}

// Total returns the combined horizontal (Left+Right) and vertical
// (Top+Bottom) extent of an inset.
func (r Rect) Total() Point {
	return Point{X: r.Left + r.Right, Y: r.Top + r.Bottom}
}

// Clamp0 floors every edge at zero. Only meaningful for insets.
func (r Rect) Clamp0() Rect {
	return Rect{
		Left:   max(r.Left, 0),
		Top:    max(r.Top, 0),
		Right:  max(r.Right, 0),
		Bottom: max(r.Bottom, 0),
	}
}

// MirrorX swaps the left and right edges of an inset.
func (r Rect) MirrorX() Rect {
	return Rect{Left: r.Right, Top: r.Top, Right: r.Left, Bottom: r.Bottom}
}

// Contains returns true if (x, y) lies within the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// String returns a debug string representation.
func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d][%d,%d]", r.Left, r.Top, r.Right, r.Bottom)
}
