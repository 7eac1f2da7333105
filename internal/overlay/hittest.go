package overlay

import "math"

// DefaultHitMargin is how far, in logical pixels, a resize handle's hit
// zone extends past the crop edge.
const DefaultHitMargin = 10

// HitTest returns the resize handle under p, or DirNone. Corners win over
// edges so a press near a corner resizes both axes.
func HitTest(r Rectangle, p Point, margin float64) Direction {
	if r.Empty() {
		return DirNone
	}
	near := func(a, b float64) bool { return math.Abs(a-b) <= margin }
	left, right := near(p.X, r.Left), near(p.X, r.Right())
	top, bottom := near(p.Y, r.Top), near(p.Y, r.Bottom())
	switch {
	case left && top:
		return TopLeft
	case right && top:
		return TopRight
	case left && bottom:
		return BottomLeft
	case right && bottom:
		return BottomRight
	}
	withinX := p.X >= r.Left && p.X <= r.Right()
	withinY := p.Y >= r.Top && p.Y <= r.Bottom()
	switch {
	case top && withinX:
		return Top
	case bottom && withinX:
		return Bottom
	case left && withinY:
		return Left
	case right && withinY:
		return Right
	}
	return DirNone
}

// HandleRects returns the square handle markers drawn around r, each size
// logical pixels wide and centred on a corner or edge midpoint.
func HandleRects(r Rectangle, size float64) map[Direction]Rectangle {
	hs := size / 2
	cx := r.Left + r.Width/2
	cy := r.Top + r.Height/2
	at := func(x, y float64) Rectangle { return Rectangle{Left: x - hs, Top: y - hs, Width: size, Height: size} }
	return map[Direction]Rectangle{
		TopLeft:     at(r.Left, r.Top),
		Top:         at(cx, r.Top),
		TopRight:    at(r.Right(), r.Top),
		Right:       at(r.Right(), cy),
		BottomRight: at(r.Right(), r.Bottom()),
		Bottom:      at(cx, r.Bottom()),
		BottomLeft:  at(r.Left, r.Bottom()),
		Left:        at(r.Left, cy),
	}
}

// resize moves the edges of start selected by d by delta. The result may
// have negative extents when an edge crosses its opposite.
func resize(start Rectangle, d Direction, delta Point) Rectangle {
	r := start
	h, v := d.edges()
	switch h {
	case -1:
		r.Left = start.Left + delta.X
		r.Width = start.Width - delta.X
	case 1:
		r.Width = start.Width + delta.X
	}
	switch v {
	case -1:
		r.Top = start.Top + delta.Y
		r.Height = start.Height - delta.Y
	case 1:
		r.Height = start.Height + delta.Y
	}
	return r
}
