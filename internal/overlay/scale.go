package overlay

import "math"

// Display describes the monitor the overlay is shown on.
type Display struct {
	// ScaleFactor is the number of physical pixels per logical pixel.
	ScaleFactor float64
	// X and Y are the monitor origin in screen space.
	X, Y int
}

// DisplayResolver looks up the active display. It is queried on every
// geometry mutation so scale changes are picked up mid-session.
type DisplayResolver interface {
	CurrentDisplay() (Display, bool)
}

// DisplayFunc adapts a function to DisplayResolver.
type DisplayFunc func() (Display, bool)

// CurrentDisplay calls f.
func (f DisplayFunc) CurrentDisplay() (Display, bool) { return f() }

// FixedDisplay always resolves to the same display.
type FixedDisplay Display

// CurrentDisplay returns d.
func (d FixedDisplay) CurrentDisplay() (Display, bool) { return Display(d), true }

// TruncateValue snaps v to the nearest logical value that maps onto a whole
// physical pixel at the given scale. Non-positive scales pass v through.
func TruncateValue(v, scale float64) float64 {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return v
	}
	return math.Round(v*scale) / scale
}

// Truncate applies TruncateValue to every field of r.
func Truncate(r Rectangle, scale float64) Rectangle {
	return Rectangle{
		Left:   TruncateValue(r.Left, scale),
		Top:    TruncateValue(r.Top, scale),
		Width:  TruncateValue(r.Width, scale),
		Height: TruncateValue(r.Height, scale),
	}
}

// truncateFor truncates r with the scale of the display res currently
// resolves to, passing r through when nothing resolves.
func truncateFor(res DisplayResolver, r Rectangle) Rectangle {
	if res == nil {
		return r
	}
	d, ok := res.CurrentDisplay()
	if !ok {
		return r
	}
	return Truncate(r, d.ScaleFactor)
}
