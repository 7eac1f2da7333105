package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	b := img.Bounds()
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			p := image.Pt(x+dx, y+dy)
			if p.In(b) {
				img.Set(p.X, p.Y, col)
			}
		}
	}
}

// DrawLine draws a Bresenham line of the given thickness.
func DrawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawArrow draws a line with a two-stroke head at (x1, y1).
func DrawArrow(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	DrawLine(img, x0, y0, x1, y1, col, thick)
	if x0 == x1 && y0 == y1 {
		return
	}
	angle := math.Atan2(float64(y1-y0), float64(x1-x0))
	size := float64(6 + thick*2)
	for _, a := range []float64{angle + math.Pi/6, angle - math.Pi/6} {
		hx := x1 - int(math.Round(math.Cos(a)*size))
		hy := y1 - int(math.Round(math.Sin(a)*size))
		DrawLine(img, x1, y1, hx, hy, col, thick)
	}
}

// DrawRect outlines rect. The outline sits on the inside of Max.
func DrawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	if rect.Empty() {
		return
	}
	x0, y0, x1, y1 := rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1
	DrawLine(img, x0, y0, x1, y0, col, thick)
	DrawLine(img, x1, y0, x1, y1, col, thick)
	DrawLine(img, x1, y1, x0, y1, col, thick)
	DrawLine(img, x0, y1, x0, y0, col, thick)
}

// DrawFilledCircle fills a disc of radius r centred at (cx, cy).
func DrawFilledCircle(img *image.RGBA, cx, cy, r int, col color.Color) {
	b := img.Bounds()
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			p := image.Pt(cx+dx, cy+dy)
			if p.In(b) {
				img.Set(p.X, p.Y, col)
			}
		}
	}
}

// DrawNumber draws a filled marker of radius r with num centred in it. The
// digit colour is black or white depending on the marker brightness.
func DrawNumber(img *image.RGBA, cx, cy, num, r int, col color.Color) {
	if r <= 0 {
		r = 1
	}
	DrawFilledCircle(img, cx, cy, r, col)

	cr, cg, cb, _ := col.RGBA()
	brightness := 0.299*float64(cr>>8) + 0.587*float64(cg>>8) + 0.114*float64(cb>>8)
	textCol := color.Color(color.Black)
	if brightness < 128 {
		textCol = color.White
	}

	text := strconv.Itoa(num)
	face := font.Face(basicfont.Face7x13)
	if r >= 12 {
		if f, err := faceForSize(float64(r)); err == nil {
			face = f
		}
	}
	d := &font.Drawer{Dst: img, Src: image.NewUniform(textCol), Face: face}
	m := face.Metrics()
	w := d.MeasureString(text).Ceil()
	h := (m.Ascent + m.Descent).Ceil()
	d.Dot = fixed.P(cx-w/2, cy-h/2+m.Ascent.Ceil())
	d.DrawString(text)
}

// DrawDashedRect outlines rect with alternating c1/c2 dashes.
func DrawDashedRect(img *image.RGBA, rect image.Rectangle, dash, thick int, c1, c2 color.Color) {
	if rect.Empty() || dash <= 0 {
		return
	}
	x0, y0, x1, y1 := rect.Min.X, rect.Min.Y, rect.Max.X-1, rect.Max.Y-1
	dashedLine(img, image.Pt(x0, y0), image.Pt(x1, y0), dash, thick, c1, c2)
	dashedLine(img, image.Pt(x1, y0), image.Pt(x1, y1), dash, thick, c1, c2)
	dashedLine(img, image.Pt(x1, y1), image.Pt(x0, y1), dash, thick, c1, c2)
	dashedLine(img, image.Pt(x0, y1), image.Pt(x0, y0), dash, thick, c1, c2)
}

// dashedLine handles axis-aligned segments only.
func dashedLine(img *image.RGBA, a, b image.Point, dash, thick int, c1, c2 color.Color) {
	step := image.Pt(sign(b.X-a.X), sign(b.Y-a.Y))
	n := abs(b.X-a.X) + abs(b.Y-a.Y)
	p := a
	for i := 0; i <= n; i++ {
		col := c1
		if (i/dash)%2 == 1 {
			col = c2
		}
		for t := 0; t < thick; t++ {
			q := p.Add(image.Pt(0, t))
			if step.X == 0 {
				q = p.Add(image.Pt(t, 0))
			}
			if q.In(img.Bounds()) {
				img.Set(q.X, q.Y, col)
			}
		}
		p = p.Add(step)
	}
}

// DrawMask blends col over rect; col's alpha controls the strength.
func DrawMask(img *image.RGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(img, rect, image.NewUniform(col), image.Point{}, draw.Over)
}

// DrawHandle draws a filled square resize handle with a one pixel border.
func DrawHandle(img *image.RGBA, rect image.Rectangle, fill, border color.Color) {
	draw.Draw(img, rect, image.NewUniform(fill), image.Point{}, draw.Src)
	DrawRect(img, rect, border, 1)
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
