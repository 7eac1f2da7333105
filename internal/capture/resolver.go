package capture

import (
	"github.com/example/cropshot/internal/overlay"
)

// Resolver reports a fixed monitor to the overlay. A positive
// ScaleOverride replaces the monitor's detected scale.
type Resolver struct {
	Monitor       MonitorInfo
	ScaleOverride float64
}

// Scale returns the effective scale factor.
func (r Resolver) Scale() float64 {
	if r.ScaleOverride > 0 {
		return r.ScaleOverride
	}
	if r.Monitor.Scale > 0 {
		return r.Monitor.Scale
	}
	return 1
}

// CurrentDisplay implements overlay.DisplayResolver.
func (r Resolver) CurrentDisplay() (overlay.Display, bool) {
	if r.Monitor.Rect.Empty() {
		return overlay.Display{}, false
	}
	return overlay.Display{
		ScaleFactor: r.Scale(),
		X:           r.Monitor.Rect.Min.X,
		Y:           r.Monitor.Rect.Min.Y,
	}, true
}
