// Package overlay implements the pointer-driven crop and annotation state
// machine of a capture session.
package overlay

import (
	"fmt"
	"math"
)

// Point is a position in logical pixels.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Rectangle is an axis-aligned region in logical pixels. A rectangle with a
// zero width or height is treated as absent.
type Rectangle struct {
	Left, Top, Width, Height float64
}

// RectFromPoints returns the bounding box of a and b.
func RectFromPoints(a, b Point) Rectangle {
	return Rectangle{
		Left:   math.Min(a.X, b.X),
		Top:    math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

// Right returns the x coordinate of the right edge.
func (r Rectangle) Right() float64 { return r.Left + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rectangle) Bottom() float64 { return r.Top + r.Height }

// Origin returns the top-left corner.
func (r Rectangle) Origin() Point { return Point{X: r.Left, Y: r.Top} }

// Empty reports whether r has no area.
func (r Rectangle) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Contains reports whether p lies inside r, edges included.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Top && p.Y <= r.Bottom()
}

// Translate returns r moved by d.
func (r Rectangle) Translate(d Point) Rectangle {
	r.Left += d.X
	r.Top += d.Y
	return r
}

// Canon flips negative extents so Width and Height are non-negative while
// covering the same area.
func (r Rectangle) Canon() Rectangle {
	if r.Width < 0 {
		r.Left += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Top += r.Height
		r.Height = -r.Height
	}
	return r
}

// Local converts a point from the space r lives in to r's own coordinates.
func (r Rectangle) Local(p Point) Point { return p.Sub(r.Origin()) }

func (r Rectangle) String() string {
	return fmt.Sprintf("{left:%g top:%g width:%g height:%g}", r.Left, r.Top, r.Width, r.Height)
}

// present returns a copy of r when it has area, nil otherwise.
func present(r Rectangle) *Rectangle {
	if r.Empty() {
		return nil
	}
	return &r
}
