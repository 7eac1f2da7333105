// Package render rasterizes overlay annotations onto RGBA images, both for
// the live overlay and for the final captured image.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"

	"github.com/example/cropshot/internal/overlay"
)

// Canvas maps crop-local logical coordinates onto Dst. A point p lands on
// Origin + p*Scale.
type Canvas struct {
	Dst    *image.RGBA
	Origin image.Point
	Scale  float64
}

func (c Canvas) scale() float64 {
	if c.Scale <= 0 {
		return 1
	}
	return c.Scale
}

func (c Canvas) pt(p overlay.Point) image.Point {
	s := c.scale()
	return c.Origin.Add(image.Pt(int(math.Round(p.X*s)), int(math.Round(p.Y*s))))
}

func (c Canvas) length(v float64) int {
	n := int(math.Round(v * c.scale()))
	if n < 1 {
		return 1
	}
	return n
}

// Shapes draws every valid shape in order.
func (c Canvas) Shapes(shapes []overlay.Shape) {
	overlay.EachShape(shapes, func(_ int, s overlay.Shape) { c.Shape(s) })
}

// Shape draws a single shape. A shape without a variant is skipped with a
// warning.
func (c Canvas) Shape(s overlay.Shape) {
	col, err := ParseColor(s.StrokeColor)
	if err != nil {
		col, _ = ParseColor(overlay.DefaultStrokeColor)
	}
	width := c.length(s.StrokeWidth)
	switch v := s.Value.(type) {
	case overlay.RectangleShape:
		r := image.Rectangle{Min: c.pt(v.Rect.Origin()), Max: c.pt(overlay.Pt(v.Rect.Right(), v.Rect.Bottom()))}
		DrawRect(c.Dst, r, col, width)
	case overlay.StraightLineShape:
		a, b := c.pt(v.Start), c.pt(v.End)
		DrawLine(c.Dst, a.X, a.Y, b.X, b.Y, col, width)
	case overlay.ArrowShape:
		a, b := c.pt(v.Start), c.pt(v.End)
		DrawArrow(c.Dst, a.X, a.Y, b.X, b.Y, col, width)
	case overlay.FreeLineShape:
		if len(v.Points) < 2 {
			return
		}
		prev := c.pt(v.Points[0])
		for _, p := range v.Points[1:] {
			next := c.pt(p)
			DrawLine(c.Dst, prev.X, prev.Y, next.X, next.Y, col, width)
			prev = next
		}
	case overlay.SequenceShape:
		p := c.pt(v.Point)
		DrawNumber(c.Dst, p.X, p.Y, v.Number, c.length(v.Size/2), col)
	case overlay.TextShape:
		if v.Text == "" {
			return
		}
		tc := col
		if v.Color != "" {
			if parsed, err := ParseColor(v.Color); err == nil {
				tc = parsed
			}
		}
		p := c.pt(v.Point)
		if err := DrawText(c.Dst, p.X, p.Y, v.Text, tc, float64(c.length(v.FontSize))); err != nil {
			log.Printf("render: text %q: %v", v.Text, err)
		}
	default:
		log.Printf("render: skipping shape with unknown variant %T", s.Value)
	}
}

// Caret draws the text entry cursor after text at p.
func (c Canvas) Caret(p overlay.Point, text string, fontSize float64, col color.Color) {
	size := float64(c.length(fontSize))
	w, h, _, err := MeasureText(text, size)
	if err != nil {
		return
	}
	at := c.pt(p).Add(image.Pt(w+1, 0))
	DrawLine(c.Dst, at.X, at.Y, at.X, at.Y+h, col, 1)
}

// Annotate returns a copy of img with shapes burned in. img is assumed to
// hold the crop area at the given scale.
func Annotate(img *image.RGBA, shapes []overlay.Shape, scale float64) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	Canvas{Dst: out, Scale: scale}.Shapes(shapes)
	return out
}
