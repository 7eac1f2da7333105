package capture

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrInvalidParam is returned when a capture region has a negative origin
// or no area.
var ErrInvalidParam = errors.New("invalid param")

// LogicalParam is a capture request in logical monitor-local pixels.
// ScreenX and ScreenY identify the monitor the region belongs to.
type LogicalParam struct {
	Left, Top, Width, Height float64
	ScreenX, ScreenY         int
}

// Validate rejects regions outside the monitor origin or without area.
func (p LogicalParam) Validate() error {
	if p.Left < 0 || p.Top < 0 || p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: %gx%g at (%g,%g)", ErrInvalidParam, p.Width, p.Height, p.Left, p.Top)
	}
	return nil
}

// PhysicalParam is a capture region in device pixels relative to the
// monitor origin.
type PhysicalParam struct {
	Left, Top, Width, Height int
}

// NewPhysicalParam converts p to device pixels. A scale <= 0 is treated
// as 1.
func NewPhysicalParam(scale float64, p LogicalParam) PhysicalParam {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	return PhysicalParam{
		Left:   int(math.Round(p.Left * scale)),
		Top:    int(math.Round(p.Top * scale)),
		Width:  int(math.Round(p.Width * scale)),
		Height: int(math.Round(p.Height * scale)),
	}
}

// Rect places the region on screen relative to origin.
func (p PhysicalParam) Rect(origin image.Point) image.Rectangle {
	min := origin.Add(image.Pt(p.Left, p.Top))
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(p.Width, p.Height))}
}
