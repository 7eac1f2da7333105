package ui

import (
	"fmt"
	"image"
	"image/draw"
	"log"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"

	"github.com/example/cropshot/internal/pin"
	"github.com/example/cropshot/internal/theme"
)

const pinBorder = 2

// showPin blocks until the pin window is closed, then deletes the pin.
func showPin(s screen.Screen, store *pin.Store, id int, th *theme.Theme) {
	defer store.Delete(id)
	img, err := store.Image(id)
	if err != nil {
		log.Printf("ui: pin #%d: %v", id, err)
		return
	}
	if th == nil {
		th = theme.Default()
	}
	frame := pinFrame(img, th)

	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  frame.Bounds().Dx(),
		Height: frame.Bounds().Dy(),
		Title:  fmt.Sprintf("Pin #%d", id),
	})
	if err != nil {
		log.Printf("ui: pin #%d: new window: %v", id, err)
		return
	}
	defer w.Release()

	buf, err := s.NewBuffer(frame.Bounds().Size())
	if err != nil {
		log.Printf("ui: pin #%d: new buffer: %v", id, err)
		return
	}
	defer buf.Release()
	draw.Draw(buf.RGBA(), buf.Bounds(), frame, image.Point{}, draw.Src)

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case paint.Event:
			w.Upload(image.Point{}, buf, buf.Bounds())
			w.Publish()
		case key.Event:
			if e.Direction == key.DirPress && e.Code == key.CodeEscape {
				return
			}
		case error:
			log.Printf("ui: pin #%d: %v", id, e)
		}
	}
}

// pinFrame surrounds img with a border in the theme's pin colour.
func pinFrame(img image.Image, th *theme.Theme) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx()+2*pinBorder, b.Dy()+2*pinBorder))
	draw.Draw(out, out.Bounds(), image.NewUniform(th.PinBackground), image.Point{}, draw.Src)
	draw.Draw(out, image.Rect(pinBorder, pinBorder, pinBorder+b.Dx(), pinBorder+b.Dy()), img, b.Min, draw.Src)
	return out
}
