package ui

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/example/cropshot/internal/overlay"
	"github.com/example/cropshot/internal/pin"
	"github.com/example/cropshot/internal/theme"
)

func whiteBackground(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func TestDrawFrameMasksOutsideCrop(t *testing.T) {
	bg := whiteBackground(200, 100)
	crop := overlay.Rectangle{Left: 20, Top: 10, Width: 30, Height: 20}
	dst := image.NewRGBA(bg.Bounds())
	drawFrame(dst, paintState{
		background: bg,
		snap:       overlay.Snapshot{Crop: &crop, Mode: overlay.Painting},
		scale:      2,
		handleSize: 10,
	})

	if got := dst.RGBAAt(80, 40); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("inside crop = %v, want untouched", got)
	}
	if got := dst.RGBAAt(150, 90); got.R == 255 {
		t.Errorf("outside crop = %v, want dimmed", got)
	}
	// The crop edge in device pixels starts at (40, 20); dashes are 4px.
	if got := dst.RGBAAt(45, 20); got != (color.RGBA{0, 0, 0, 255}) {
		t.Errorf("top border = %v, want the alternate dash colour", got)
	}
}

func TestDrawFrameWithoutCropDimsEverything(t *testing.T) {
	bg := whiteBackground(20, 20)
	dst := image.NewRGBA(bg.Bounds())
	th := theme.Default()
	th.Mask = color.RGBA{0, 0, 0, 255}
	drawFrame(dst, paintState{background: bg, theme: th})
	if got := dst.RGBAAt(10, 10); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("pixel = %v, want fully masked", got)
	}
}

func TestDrawFrameHandles(t *testing.T) {
	bg := whiteBackground(100, 100)
	crop := overlay.Rectangle{Left: 20, Top: 20, Width: 40, Height: 40}
	th := theme.Default()
	th.Handle = color.RGBA{0, 255, 0, 255}
	dst := image.NewRGBA(bg.Bounds())
	drawFrame(dst, paintState{background: bg, snap: overlay.Snapshot{Crop: &crop}, scale: 1, handleSize: 10, theme: th})
	// Centre of the bottom-right handle.
	if got := dst.RGBAAt(60, 60); got != th.Handle {
		t.Fatalf("handle pixel = %v, want %v", got, th.Handle)
	}

	dst = image.NewRGBA(bg.Bounds())
	drawFrame(dst, paintState{background: bg, snap: overlay.Snapshot{Crop: &crop, Mode: overlay.Painting}, scale: 1, handleSize: 10, theme: th})
	if got := dst.RGBAAt(60, 60); got == th.Handle {
		t.Fatalf("handles drawn while painting")
	}
}

func TestDrawFrameClipsShapesToCrop(t *testing.T) {
	bg := whiteBackground(100, 100)
	crop := overlay.Rectangle{Left: 10, Top: 10, Width: 20, Height: 20}
	line := overlay.Shape{
		Value:       overlay.StraightLineShape{Start: overlay.Pt(0, 10), End: overlay.Pt(80, 10)},
		StrokeColor: "#0000FF",
		StrokeWidth: 1,
	}
	th := theme.Default()
	th.Mask = color.RGBA{}
	dst := image.NewRGBA(bg.Bounds())
	drawFrame(dst, paintState{background: bg, snap: overlay.Snapshot{Crop: &crop, Shapes: []overlay.Shape{line}, Mode: overlay.Painting}, scale: 1, theme: th})
	blue := color.RGBA{0, 0, 255, 255}
	if got := dst.RGBAAt(15, 20); got != blue {
		t.Errorf("inside crop = %v, want line", got)
	}
	if got := dst.RGBAAt(60, 20); got == blue {
		t.Errorf("line drawn outside the crop")
	}
}

func TestPinFrame(t *testing.T) {
	store := pin.NewStore()
	id, err := store.Create(whiteBackground(8, 6))
	if err != nil {
		t.Fatal(err)
	}
	img, err := store.Image(id)
	if err != nil {
		t.Fatal(err)
	}
	th := theme.Default()
	out := pinFrame(img, th)
	if b := out.Bounds(); b.Dx() != 8+2*pinBorder || b.Dy() != 6+2*pinBorder {
		t.Fatalf("bounds = %v", b)
	}
	if got := out.RGBAAt(0, 0); got != th.PinBackground {
		t.Fatalf("border = %v", got)
	}
	if got := out.RGBAAt(pinBorder, pinBorder); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("image = %v", got)
	}
}
