package overlay

import (
	"fmt"
	"log"
)

// CropEngine owns the crop rectangle and the crop mode for one session.
type CropEngine struct {
	display DisplayResolver
	margin  float64

	mode   CropMode
	crop   *Rectangle
	anchor *Point
	// start is the rectangle as it was when a drag or resize began.
	start *Rectangle
}

// NewCropEngine creates an idle engine with no crop area. A margin <= 0
// selects DefaultHitMargin.
func NewCropEngine(display DisplayResolver, margin float64) *CropEngine {
	if margin <= 0 {
		margin = DefaultHitMargin
	}
	return &CropEngine{display: display, margin: margin}
}

// Crop returns the current crop rectangle.
func (c *CropEngine) Crop() (Rectangle, bool) {
	if c.crop == nil {
		return Rectangle{}, false
	}
	return *c.crop, true
}

// SetCrop replaces the crop rectangle, applying physical truncation.
func (c *CropEngine) SetCrop(r Rectangle) {
	c.crop = present(truncateFor(c.display, r.Canon()))
}

// Mode returns the active mode.
func (c *CropEngine) Mode() CropMode { return c.mode }

// HitMargin returns the resize hit margin in logical pixels.
func (c *CropEngine) HitMargin() float64 { return c.margin }

// SetMode switches to m. A new non-idle mode is only accepted from idle so
// an in-flight gesture is never reinterpreted; asking for the current mode
// is a no-op.
func (c *CropEngine) SetMode(m CropMode) error {
	if m == c.mode {
		return nil
	}
	if c.mode.Kind != ModeIdle && m.Kind != ModeIdle {
		log.Printf("crop: rejected mode change %s -> %s", c.mode, m)
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, c.mode, m)
	}
	c.mode = m
	return nil
}

// Cancel drops the crop rectangle and any gesture in progress.
func (c *CropEngine) Cancel() {
	c.crop = nil
	c.anchor = nil
	c.start = nil
	c.mode = Idle
}

// HandlePointer applies ev to the crop geometry. It reports whether the
// event belongs to a geometry gesture; events that do not are left for
// the annotation engine.
func (c *CropEngine) HandlePointer(ev PointerEvent) bool {
	switch ev.Kind {
	case PointerPress:
		return c.press(ev.State)
	case PointerMove:
		return c.move(ev.State)
	case PointerRelease:
		return c.release()
	}
	return false
}

// Classify reports the mode a press at p would start from idle.
func (c *CropEngine) Classify(p Point) CropMode {
	if c.crop != nil {
		if d := HitTest(*c.crop, p, c.margin); d != DirNone {
			return Resizing(d)
		}
		if c.crop.Contains(p) {
			return Dragging
		}
	}
	return Cropping
}

func (c *CropEngine) press(s MouseState) bool {
	if s.Press == nil {
		return false
	}
	if c.mode.Geometry() {
		// The mode and anchor stay fixed until release.
		return true
	}
	p := *s.Press
	if c.mode.Kind == ModePainting {
		if c.crop != nil && c.crop.Contains(p) {
			return false
		}
		// Outside the canvas while painting: the guard rejects the crop.
		_ = c.SetMode(Cropping)
		return true
	}
	next := c.Classify(p)
	if err := c.SetMode(next); err != nil {
		return true
	}
	c.anchor = &p
	c.start = nil
	if c.crop != nil && next.Kind != ModeCropping {
		start := *c.crop
		c.start = &start
	}
	return true
}

func (c *CropEngine) move(s MouseState) bool {
	if !c.mode.Geometry() {
		return false
	}
	if !s.Pressing || c.anchor == nil || s.Position == nil {
		return true
	}
	pos := *s.Position
	switch c.mode.Kind {
	case ModeCropping:
		r := RectFromPoints(*c.anchor, pos)
		if r.Empty() {
			c.crop = nil
			return true
		}
		c.crop = present(truncateFor(c.display, r))
	case ModeDragging:
		if c.start == nil {
			return true
		}
		r := c.start.Translate(pos.Sub(*c.anchor))
		c.crop = present(truncateFor(c.display, r))
	case ModeResizing:
		if c.start == nil {
			return true
		}
		r := resize(*c.start, c.mode.Direction, pos.Sub(*c.anchor)).Canon()
		c.crop = present(truncateFor(c.display, r))
	}
	return true
}

func (c *CropEngine) release() bool {
	geometry := c.mode.Geometry()
	c.anchor = nil
	c.start = nil
	if geometry {
		_ = c.SetMode(Idle)
	}
	return geometry
}
