package ui

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/cropshot/internal/overlay"
	"github.com/example/cropshot/internal/render"
	"github.com/example/cropshot/internal/theme"
)

// paintState is everything needed to draw one overlay frame.
type paintState struct {
	background *image.RGBA
	snap       overlay.Snapshot
	scale      float64
	handleSize float64
	theme      *theme.Theme
	message    string
}

// toPixels maps a logical rectangle onto window pixels.
func toPixels(r overlay.Rectangle, scale float64) image.Rectangle {
	px := func(v float64) int { return int(math.Round(v * scale)) }
	return image.Rect(px(r.Left), px(r.Top), px(r.Right()), px(r.Bottom()))
}

func drawFrame(dst *image.RGBA, st paintState) {
	th := st.theme
	if th == nil {
		th = theme.Default()
	}
	scale := st.scale
	if scale <= 0 {
		scale = 1
	}
	draw.Draw(dst, dst.Bounds(), st.background, st.background.Bounds().Min, draw.Src)

	if st.snap.Crop == nil {
		render.DrawMask(dst, dst.Bounds(), th.Mask)
		drawMessage(dst, st.message)
		return
	}
	crop := toPixels(*st.snap.Crop, scale)
	b := dst.Bounds()
	for _, r := range []image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Max.X, crop.Min.Y),
		image.Rect(b.Min.X, crop.Max.Y, b.Max.X, b.Max.Y),
		image.Rect(b.Min.X, crop.Min.Y, crop.Min.X, crop.Max.Y),
		image.Rect(crop.Max.X, crop.Min.Y, b.Max.X, crop.Max.Y),
	} {
		if r = r.Intersect(b); !r.Empty() {
			render.DrawMask(dst, r, th.Mask)
		}
	}

	// Annotations are clipped to the crop like the captured image will be.
	if clip, ok := dst.SubImage(crop).(*image.RGBA); ok && !clip.Bounds().Empty() {
		canvas := render.Canvas{Dst: clip, Origin: crop.Min, Scale: scale}
		canvas.Shapes(st.snap.Shapes)
		if st.snap.Preview != nil {
			canvas.Shape(*st.snap.Preview)
			if t, ok := st.snap.Preview.Value.(overlay.TextShape); ok {
				canvas.Caret(t.Point, t.Text, t.FontSize, th.Caret)
			}
		}
	}

	render.DrawDashedRect(dst, crop, 4, 1, th.Border, th.BorderAlt)
	if st.snap.Mode.Kind != overlay.ModePainting && st.snap.Mode.Kind != overlay.ModeCropping {
		for _, h := range overlay.HandleRects(*st.snap.Crop, st.handleSize) {
			render.DrawHandle(dst, toPixels(h, scale), th.Handle, th.HandleBorder)
		}
	}
	drawMessage(dst, st.message)
}

// drawMessage shows a short notice in the middle of the frame.
func drawMessage(dst *image.RGBA, msg string) {
	if msg == "" {
		return
	}
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.Black, Face: face}
	w := d.MeasureString(msg).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()
	b := dst.Bounds()
	px := b.Min.X + (b.Dx()-w)/2
	py := b.Min.Y + (b.Dy()-ascent-descent)/2 + ascent
	rect := image.Rect(px-8, py-ascent-8, px+w+8, py+descent+8)
	draw.Draw(dst, rect, &image.Uniform{color.RGBA{255, 255, 255, 230}}, image.Point{}, draw.Over)
	render.DrawRect(dst, rect, color.Black, 2)
	d.Dot = fixed.P(px, py)
	d.DrawString(msg)
}
