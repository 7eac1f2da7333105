package overlay

import (
	"errors"
	"math/rand"
	"testing"
)

func newTestCrop() *CropEngine {
	return NewCropEngine(FixedDisplay{ScaleFactor: 1}, DefaultHitMargin)
}

func drag(c *CropEngine, from Point, to ...Point) {
	var tr Tracker
	c.HandlePointer(tr.Press(from))
	for _, p := range to {
		c.HandlePointer(tr.Move(p))
	}
}

func mustCrop(t *testing.T, c *CropEngine) Rectangle {
	t.Helper()
	r, ok := c.Crop()
	if !ok {
		t.Fatalf("expected crop area, mode %s", c.Mode())
	}
	return r
}

func TestCropCreatesNormalizedRectangle(t *testing.T) {
	c := newTestCrop()
	drag(c, Pt(100, 100), Pt(300, 250))
	if c.Mode() != Cropping {
		t.Fatalf("mode = %s, want cropping", c.Mode())
	}
	want := Rectangle{Left: 100, Top: 100, Width: 200, Height: 150}
	if got := mustCrop(t, c); got != want {
		t.Fatalf("crop = %v, want %v", got, want)
	}

	c = newTestCrop()
	drag(c, Pt(300, 250), Pt(100, 100))
	if got := mustCrop(t, c); got != want {
		t.Fatalf("reverse crop = %v, want %v", got, want)
	}
}

func TestCropZeroSizeIsAbsent(t *testing.T) {
	c := newTestCrop()
	drag(c, Pt(10, 10), Pt(50, 50), Pt(50, 10))
	if _, ok := c.Crop(); ok {
		t.Fatalf("expected zero-height crop to be absent")
	}
	var tr Tracker
	tr.Press(Pt(10, 10))
	c.HandlePointer(tr.Move(Pt(60, 40)))
	if got := mustCrop(t, c); got.Width != 50 || got.Height != 30 {
		t.Fatalf("crop did not recover: %v", got)
	}
}

func TestCropDragTranslates(t *testing.T) {
	c := newTestCrop()
	c.SetCrop(Rectangle{Left: 100, Top: 100, Width: 200, Height: 150})
	drag(c, Pt(150, 150), Pt(170, 180))
	if c.Mode() != Dragging {
		t.Fatalf("mode = %s, want dragging", c.Mode())
	}
	want := Rectangle{Left: 120, Top: 130, Width: 200, Height: 150}
	if got := mustCrop(t, c); got != want {
		t.Fatalf("crop = %v, want %v", got, want)
	}
}

func TestCropResizeDirections(t *testing.T) {
	start := Rectangle{Left: 100, Top: 100, Width: 200, Height: 150}
	delta := Pt(20, 10)
	tests := []struct {
		press Point
		dir   Direction
		want  Rectangle
	}{
		{Pt(100, 100), TopLeft, Rectangle{Left: 120, Top: 110, Width: 180, Height: 140}},
		{Pt(200, 100), Top, Rectangle{Left: 100, Top: 110, Width: 200, Height: 140}},
		{Pt(300, 100), TopRight, Rectangle{Left: 100, Top: 110, Width: 220, Height: 140}},
		{Pt(100, 175), Left, Rectangle{Left: 120, Top: 100, Width: 180, Height: 150}},
		{Pt(300, 175), Right, Rectangle{Left: 100, Top: 100, Width: 220, Height: 150}},
		{Pt(100, 250), BottomLeft, Rectangle{Left: 120, Top: 100, Width: 180, Height: 160}},
		{Pt(200, 250), Bottom, Rectangle{Left: 100, Top: 100, Width: 200, Height: 160}},
		{Pt(300, 250), BottomRight, Rectangle{Left: 100, Top: 100, Width: 220, Height: 160}},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			c := newTestCrop()
			c.SetCrop(start)
			drag(c, tt.press, tt.press.Add(delta))
			if c.Mode() != Resizing(tt.dir) {
				t.Fatalf("mode = %s, want %s", c.Mode(), Resizing(tt.dir))
			}
			if got := mustCrop(t, c); got != tt.want {
				t.Fatalf("crop = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCropResizeHitMargin(t *testing.T) {
	c := newTestCrop()
	c.SetCrop(Rectangle{Left: 100, Top: 100, Width: 200, Height: 150})
	if m := c.Classify(Pt(309, 259)); m != Resizing(BottomRight) {
		t.Fatalf("press 9px past the corner = %s, want bottom-right resize", m)
	}
	if m := c.Classify(Pt(311, 200)); m != Cropping {
		t.Fatalf("press 11px past the edge = %s, want cropping", m)
	}
	if m := c.Classify(Pt(200, 200)); m != Dragging {
		t.Fatalf("press in the interior = %s, want dragging", m)
	}
}

func TestCropInvertedResizeIsNormalized(t *testing.T) {
	c := newTestCrop()
	c.SetCrop(Rectangle{Left: 100, Top: 100, Width: 200, Height: 150})
	drag(c, Pt(300, 175), Pt(50, 175))
	want := Rectangle{Left: 50, Top: 100, Width: 50, Height: 150}
	if got := mustCrop(t, c); got != want {
		t.Fatalf("crop = %v, want %v", got, want)
	}
}

func TestCropReleaseReturnsToIdle(t *testing.T) {
	c := newTestCrop()
	var tr Tracker
	c.HandlePointer(tr.Press(Pt(0, 0)))
	c.HandlePointer(tr.Move(Pt(10, 10)))
	if !c.HandlePointer(tr.Release(Pt(10, 10))) {
		t.Fatalf("release of a crop gesture should be consumed")
	}
	if c.Mode() != Idle {
		t.Fatalf("mode = %s, want idle", c.Mode())
	}
	if _, ok := c.Crop(); !ok {
		t.Fatalf("crop lost on release")
	}
}

func TestCropPaintingSurvivesRelease(t *testing.T) {
	c := newTestCrop()
	c.SetCrop(Rectangle{Left: 0, Top: 0, Width: 100, Height: 100})
	if err := c.SetMode(Painting); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	var tr Tracker
	if c.HandlePointer(tr.Press(Pt(50, 50))) {
		t.Fatalf("press inside the canvas while painting should not be consumed")
	}
	c.HandlePointer(tr.Move(Pt(60, 60)))
	c.HandlePointer(tr.Release(Pt(60, 60)))
	if c.Mode() != Painting {
		t.Fatalf("mode = %s, want painting", c.Mode())
	}
	if got := mustCrop(t, c); got != (Rectangle{Width: 100, Height: 100}) {
		t.Fatalf("painting changed the crop: %v", got)
	}
}

func TestCropModeGuard(t *testing.T) {
	c := newTestCrop()
	if err := c.SetMode(Cropping); err != nil {
		t.Fatalf("idle -> cropping: %v", err)
	}
	if err := c.SetMode(Dragging); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("cropping -> dragging: got %v, want ErrIllegalTransition", err)
	}
	if c.Mode() != Cropping {
		t.Fatalf("rejected transition changed mode to %s", c.Mode())
	}
	if err := c.SetMode(Cropping); err != nil {
		t.Fatalf("same mode should be a no-op, got %v", err)
	}
	if err := c.SetMode(Idle); err != nil {
		t.Fatalf("cropping -> idle: %v", err)
	}
}

func TestCropCancel(t *testing.T) {
	c := newTestCrop()
	drag(c, Pt(0, 0), Pt(40, 40))
	c.Cancel()
	if _, ok := c.Crop(); ok {
		t.Fatalf("crop survived cancel")
	}
	if c.Mode() != Idle {
		t.Fatalf("mode = %s, want idle", c.Mode())
	}
	var tr Tracker
	tr.Press(Pt(0, 0))
	c.HandlePointer(tr.Move(Pt(80, 80)))
	if _, ok := c.Crop(); ok {
		t.Fatalf("moves after cancel must not resume the gesture")
	}
}

func TestCropTruncatesToPhysicalPixels(t *testing.T) {
	c := NewCropEngine(FixedDisplay{ScaleFactor: 1.5}, 0)
	drag(c, Pt(10.1, 10.1), Pt(20.5, 30.9))
	got := mustCrop(t, c)
	for _, v := range []float64{got.Left, got.Top, got.Width, got.Height} {
		phys := v * 1.5
		if d := phys - float64(int(phys+0.5)); d > 1e-9 || d < -1e-9 {
			t.Fatalf("value %v does not map to a whole physical pixel (%v)", v, phys)
		}
	}
}

func TestCropNeverExposesNegativeSize(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := NewCropEngine(FixedDisplay{ScaleFactor: 1.25}, 0)
	var tr Tracker
	rnd := func() Point { return Pt(rng.Float64()*400-50, rng.Float64()*400-50) }
	for i := 0; i < 2000; i++ {
		switch rng.Intn(4) {
		case 0:
			c.HandlePointer(tr.Press(rnd()))
		case 1, 2:
			c.HandlePointer(tr.Move(rnd()))
		default:
			c.HandlePointer(tr.Release(rnd()))
		}
		if r, ok := c.Crop(); ok && (r.Width <= 0 || r.Height <= 0) {
			t.Fatalf("step %d exposed %v", i, r)
		}
	}
}

func TestCropRepeatedPressKeepsGesture(t *testing.T) {
	c := newTestCrop()
	var tr Tracker
	c.HandlePointer(tr.Press(Pt(100, 100)))
	c.HandlePointer(tr.Move(Pt(300, 250)))
	c.HandlePointer(tr.Press(Pt(250, 200)))
	c.HandlePointer(tr.Move(Pt(260, 210)))
	if c.Mode() != Cropping {
		t.Fatalf("mode = %s, want cropping", c.Mode())
	}
	want := Rectangle{Left: 100, Top: 100, Width: 160, Height: 110}
	if got := mustCrop(t, c); got != want {
		t.Fatalf("crop = %v, want %v", got, want)
	}

	// A press event carrying a new origin must not re-anchor a drag.
	c = newTestCrop()
	c.SetCrop(Rectangle{Left: 100, Top: 100, Width: 200, Height: 150})
	tr = Tracker{}
	c.HandlePointer(tr.Press(Pt(150, 150)))
	c.HandlePointer(tr.Move(Pt(170, 180)))
	q := Pt(200, 200)
	c.HandlePointer(PointerEvent{Kind: PointerPress, State: MouseState{Pressing: true, Press: &q, Position: &q}})
	c.HandlePointer(tr.Move(Pt(210, 210)))
	if c.Mode() != Dragging {
		t.Fatalf("mode = %s, want dragging", c.Mode())
	}
	want = Rectangle{Left: 160, Top: 160, Width: 200, Height: 150}
	if got := mustCrop(t, c); got != want {
		t.Fatalf("crop = %v, want %v", got, want)
	}
}
