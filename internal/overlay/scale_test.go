package overlay

import (
	"math"
	"testing"
)

func TestTruncateValueIdempotent(t *testing.T) {
	for _, scale := range []float64{1, 1.25, 1.5, 1.75, 2, 2.5, 3} {
		for _, v := range []float64{0, 0.3, 1, 10.1, 33.33, 99.99, 127.5, 1919.7} {
			once := TruncateValue(v, scale)
			twice := TruncateValue(once, scale)
			if math.Abs(once-twice) > 1e-9 {
				t.Fatalf("scale %v: truncate(%v)=%v but truncate again=%v", scale, v, once, twice)
			}
			if math.Abs(once-v) > 0.5/scale+1e-9 {
				t.Fatalf("scale %v: truncate(%v)=%v moved more than half a physical pixel", scale, v, once)
			}
		}
	}
}

func TestTruncateValuePassThrough(t *testing.T) {
	for _, scale := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if got := TruncateValue(10.37, scale); got != 10.37 {
			t.Fatalf("scale %v: got %v, want pass-through", scale, got)
		}
	}
}

func TestTruncateForWithoutDisplay(t *testing.T) {
	r := Rectangle{Left: 1.3, Top: 2.7, Width: 3.1, Height: 4.9}
	if got := truncateFor(nil, r); got != r {
		t.Fatalf("nil resolver changed %v to %v", r, got)
	}
	none := DisplayFunc(func() (Display, bool) { return Display{}, false })
	if got := truncateFor(none, r); got != r {
		t.Fatalf("unresolved display changed %v to %v", r, got)
	}
	if got := truncateFor(FixedDisplay{ScaleFactor: 2}, r); got != (Rectangle{Left: 1.5, Top: 2.5, Width: 3, Height: 5}) {
		t.Fatalf("scale 2 truncation = %v", got)
	}
}
