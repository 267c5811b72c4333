package geom

import "fmt"

// Point is an integer pair, typically a size in pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Add returns the component-wise sum of p and q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the component-wise difference p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Min returns the component-wise minimum of p and q.
func (p Point) Min(q Point) Point { return Point{X: min(p.X, q.X), Y: min(p.Y, q.Y)} }

// Max returns the component-wise maximum of p and q.
func (p Point) Max(q Point) Point { return Point{X: max(p.X, q.X), Y: max(p.Y, q.Y)} }

// Clamp0 floors both components at zero.
func (p Point) Clamp0() Point { return Point{X: max(p.X, 0), Y: max(p.Y, 0)} }

// String returns a debug string representation.
func (p Point) String() string { return fmt.Sprintf("%dx%d", p.X, p.Y) }

// PointF is a floating-point pair, used for scale factors.
type PointF struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// String returns a debug string representation.
func (p PointF) String() string { return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y) }
